package material

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidTitle     = errors.New("material title must not be blank")
)

type MaterialService interface {
	Create(ctx context.Context, caller user.Principal, dto CreateMaterialDTO) (*Material, error)
	Get(ctx context.Context, caller user.Principal, id uuid.UUID) (*Material, error)
	ListByCourse(ctx context.Context, caller user.Principal, courseID uuid.UUID) ([]*Material, error)
	Update(ctx context.Context, caller user.Principal, id uuid.UUID, dto UpdateMaterialDTO) (*Material, error)
	Delete(ctx context.Context, caller user.Principal, id uuid.UUID) error
}

type materialService struct {
	repo           MaterialRepository
	courseRepo     course.CourseRepository
	enrollmentRepo enrollment.EnrollmentRepository
}

func NewService(repo MaterialRepository, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) MaterialService {
	return &materialService{
		repo:           repo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *materialService) canManage(caller user.Principal, courseID uuid.UUID) error {
	c, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCourseNotFound
	}

	switch caller.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleInstructor:
		if c.InstructorID != caller.ID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

func (s *materialService) canView(caller user.Principal, courseID uuid.UUID) error {
	if caller.Role == user.RoleStudent {
		enrolled, err := s.enrollmentRepo.IsEnrolled(caller.ID, courseID)
		if err != nil {
			return err
		}
		if !enrolled {
			return ErrForbidden
		}
		return nil
	}
	return s.canManage(caller, courseID)
}

func (s *materialService) Create(ctx context.Context, caller user.Principal, dto CreateMaterialDTO) (*Material, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(dto.Title) == "" {
		return nil, ErrInvalidTitle
	}
	if err := s.canManage(caller, dto.CourseID); err != nil {
		return nil, err
	}

	m := &Material{
		Title:     dto.Title,
		FilePath:  dto.FilePath,
		FileType:  dto.FileType,
		VideoLink: dto.VideoLink,
		CourseID:  dto.CourseID,
	}
	if err := s.repo.Create(m); err != nil {
		log.WithError(err).Error("Failed to create material")
		return nil, err
	}

	log.WithField("material_id", m.ID).Info("Material created successfully")
	return m, nil
}

func (s *materialService) Get(ctx context.Context, caller user.Principal, id uuid.UUID) (*Material, error) {
	log := config.WithContext(ctx)

	m, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find material")
		return nil, err
	}
	if m == nil {
		return nil, ErrMaterialNotFound
	}
	if err := s.canView(caller, m.CourseID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *materialService) ListByCourse(ctx context.Context, caller user.Principal, courseID uuid.UUID) ([]*Material, error) {
	log := config.WithContext(ctx)

	if err := s.canView(caller, courseID); err != nil {
		return nil, err
	}

	materials, err := s.repo.ListByCourse(courseID)
	if err != nil {
		log.WithError(err).Error("Failed to list materials")
		return nil, err
	}
	return materials, nil
}

func (s *materialService) Update(ctx context.Context, caller user.Principal, id uuid.UUID, dto UpdateMaterialDTO) (*Material, error) {
	log := config.WithContext(ctx)

	m, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find material for update")
		return nil, err
	}
	if m == nil {
		return nil, ErrMaterialNotFound
	}
	if err := s.canManage(caller, m.CourseID); err != nil {
		return nil, err
	}

	if dto.Title != nil {
		if strings.TrimSpace(*dto.Title) == "" {
			return nil, ErrInvalidTitle
		}
		m.Title = *dto.Title
	}
	if dto.FilePath != nil {
		m.FilePath = *dto.FilePath
	}
	if dto.FileType != nil {
		m.FileType = *dto.FileType
	}
	if dto.VideoLink != nil {
		m.VideoLink = *dto.VideoLink
	}

	if err := s.repo.Update(m); err != nil {
		log.WithError(err).Error("Failed to update material")
		return nil, err
	}

	log.WithField("material_id", m.ID).Info("Material updated successfully")
	return m, nil
}

func (s *materialService) Delete(ctx context.Context, caller user.Principal, id uuid.UUID) error {
	log := config.WithContext(ctx)

	m, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find material for deletion")
		return err
	}
	if m == nil {
		return ErrMaterialNotFound
	}
	if err := s.canManage(caller, m.CourseID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete material")
		return err
	}

	log.WithField("material_id", id).Info("Material deleted successfully")
	return nil
}
