package module

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
	ErrModuleNotFound = errors.New("module not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidTitle   = errors.New("module title must not be blank")
)

type ModuleService interface {
	Create(ctx context.Context, caller user.Principal, dto CreateModuleDTO) (*Module, error)
	Get(ctx context.Context, caller user.Principal, id uuid.UUID) (*Module, error)
	ListByCourse(ctx context.Context, caller user.Principal, courseID uuid.UUID) ([]*Module, error)
	Update(ctx context.Context, caller user.Principal, id uuid.UUID, dto UpdateModuleDTO) (*Module, error)
	Delete(ctx context.Context, caller user.Principal, id uuid.UUID) error
}

type moduleService struct {
	repo           ModuleRepository
	courseRepo     course.CourseRepository
	enrollmentRepo enrollment.EnrollmentRepository
}

func NewService(repo ModuleRepository, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) ModuleService {
	return &moduleService{
		repo:           repo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// canManage checks write access to a course's modules: admins always,
// instructors only for courses they instruct.
func (s *moduleService) canManage(caller user.Principal, courseID uuid.UUID) error {
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

func (s *moduleService) canView(caller user.Principal, courseID uuid.UUID) error {
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

func (s *moduleService) Create(ctx context.Context, caller user.Principal, dto CreateModuleDTO) (*Module, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(dto.Title) == "" {
		return nil, ErrInvalidTitle
	}
	if err := s.canManage(caller, dto.CourseID); err != nil {
		return nil, err
	}

	m := &Module{
		Title:     dto.Title,
		Content:   dto.Content,
		PdfPath:   dto.PdfPath,
		WordPath:  dto.WordPath,
		PptPath:   dto.PptPath,
		AudioPath: dto.AudioPath,
		VideoPath: dto.VideoPath,
		CourseID:  dto.CourseID,
	}
	if err := s.repo.Create(m); err != nil {
		log.WithError(err).Error("Failed to create module")
		return nil, err
	}

	log.WithField("module_id", m.ID).Info("Module created successfully")
	return m, nil
}

func (s *moduleService) Get(ctx context.Context, caller user.Principal, id uuid.UUID) (*Module, error) {
	log := config.WithContext(ctx)

	m, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find module")
		return nil, err
	}
	if m == nil {
		return nil, ErrModuleNotFound
	}
	if err := s.canView(caller, m.CourseID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *moduleService) ListByCourse(ctx context.Context, caller user.Principal, courseID uuid.UUID) ([]*Module, error) {
	log := config.WithContext(ctx)

	if err := s.canView(caller, courseID); err != nil {
		return nil, err
	}

	modules, err := s.repo.ListByCourse(courseID)
	if err != nil {
		log.WithError(err).Error("Failed to list modules")
		return nil, err
	}
	return modules, nil
}

func (s *moduleService) Update(ctx context.Context, caller user.Principal, id uuid.UUID, dto UpdateModuleDTO) (*Module, error) {
	log := config.WithContext(ctx)

	m, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find module for update")
		return nil, err
	}
	if m == nil {
		return nil, ErrModuleNotFound
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
	if dto.Content != nil {
		m.Content = *dto.Content
	}
	if dto.PdfPath != nil {
		m.PdfPath = *dto.PdfPath
	}
	if dto.WordPath != nil {
		m.WordPath = *dto.WordPath
	}
	if dto.PptPath != nil {
		m.PptPath = *dto.PptPath
	}
	if dto.AudioPath != nil {
		m.AudioPath = *dto.AudioPath
	}
	if dto.VideoPath != nil {
		m.VideoPath = *dto.VideoPath
	}

	if err := s.repo.Update(m); err != nil {
		log.WithError(err).Error("Failed to update module")
		return nil, err
	}

	log.WithField("module_id", m.ID).Info("Module updated successfully")
	return m, nil
}

func (s *moduleService) Delete(ctx context.Context, caller user.Principal, id uuid.UUID) error {
	log := config.WithContext(ctx)

	m, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find module for deletion")
		return err
	}
	if m == nil {
		return ErrModuleNotFound
	}
	if err := s.canManage(caller, m.CourseID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete module")
		return err
	}

	log.WithField("module_id", id).Info("Module deleted successfully")
	return nil
}
