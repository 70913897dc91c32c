package course

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTitle      = errors.New("course title must not be blank")
	ErrInvalidInstructor = errors.New("instructor does not exist or is not an instructor")
)

type CourseService interface {
	Create(ctx context.Context, caller user.Principal, dto CreateCourseDTO) (*Course, error)
	Get(ctx context.Context, caller user.Principal, id uuid.UUID) (*Course, error)
	List(ctx context.Context, caller user.Principal) ([]*Course, error)
	Update(ctx context.Context, caller user.Principal, id uuid.UUID, dto UpdateCourseDTO) (*Course, error)
	Delete(ctx context.Context, caller user.Principal, id uuid.UUID) error
}

type courseService struct {
	repo     CourseRepository
	userRepo user.UserRepository
}

func NewService(repo CourseRepository, userRepo user.UserRepository) CourseService {
	return &courseService{repo: repo, userRepo: userRepo}
}

func (s *courseService) validateInstructor(id uuid.UUID) error {
	u, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil || u.Role != user.RoleInstructor {
		return ErrInvalidInstructor
	}
	return nil
}

func (s *courseService) Create(ctx context.Context, caller user.Principal, dto CreateCourseDTO) (*Course, error) {
	log := config.WithContext(ctx)

	if caller.Role != user.RoleAdmin {
		log.WithField("caller_id", caller.ID).Warn("Non-admin attempted to create course")
		return nil, ErrForbidden
	}
	if strings.TrimSpace(dto.Title) == "" {
		return nil, ErrInvalidTitle
	}
	if err := s.validateInstructor(dto.InstructorID); err != nil {
		return nil, err
	}

	c := &Course{
		Title:        dto.Title,
		Description:  dto.Description,
		InstructorID: dto.InstructorID,
	}
	if err := s.repo.Create(c); err != nil {
		log.WithError(err).Error("Failed to create course")
		return nil, err
	}

	log.WithField("course_id", c.ID).Info("Course created successfully")
	return c, nil
}

func (s *courseService) Get(ctx context.Context, caller user.Principal, id uuid.UUID) (*Course, error) {
	log := config.WithContext(ctx)

	c, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find course")
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (s *courseService) List(ctx context.Context, caller user.Principal) ([]*Course, error) {
	log := config.WithContext(ctx)

	var (
		courses []*Course
		err     error
	)
	switch caller.Role {
	case user.RoleAdmin:
		courses, err = s.repo.ListAll()
	case user.RoleInstructor:
		courses, err = s.repo.ListByInstructor(caller.ID)
	case user.RoleStudent:
		courses, err = s.repo.ListByEnrolledStudent(caller.ID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		log.WithError(err).Error("Failed to list courses")
		return nil, err
	}
	return courses, nil
}

func (s *courseService) Update(ctx context.Context, caller user.Principal, id uuid.UUID, dto UpdateCourseDTO) (*Course, error) {
	log := config.WithContext(ctx)

	if caller.Role != user.RoleAdmin {
		log.WithField("caller_id", caller.ID).Warn("Non-admin attempted to update course")
		return nil, ErrForbidden
	}

	c, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find course for update")
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}

	if dto.Title != nil {
		if strings.TrimSpace(*dto.Title) == "" {
			return nil, ErrInvalidTitle
		}
		c.Title = *dto.Title
	}
	if dto.Description != nil {
		c.Description = *dto.Description
	}
	if dto.InstructorID != nil {
		if err := s.validateInstructor(*dto.InstructorID); err != nil {
			return nil, err
		}
		c.InstructorID = *dto.InstructorID
	}

	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Failed to update course")
		return nil, err
	}

	log.WithField("course_id", c.ID).Info("Course updated successfully")
	return c, nil
}

func (s *courseService) Delete(ctx context.Context, caller user.Principal, id uuid.UUID) error {
	log := config.WithContext(ctx)

	if caller.Role != user.RoleAdmin {
		log.WithField("caller_id", caller.ID).Warn("Non-admin attempted to delete course")
		return ErrForbidden
	}

	c, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find course for deletion")
		return err
	}
	if c == nil {
		return ErrCourseNotFound
	}

	if err := s.repo.DeleteCascade(id); err != nil {
		log.WithError(err).Error("Failed to delete course")
		return err
	}

	log.WithField("course_id", id).Info("Course deleted successfully")
	return nil
}
