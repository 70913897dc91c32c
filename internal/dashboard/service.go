package dashboard

import (
	"context"
	"errors"

	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/enrollment"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

var ErrForbidden = errors.New("forbidden")

// latestCourseCount caps how many courses the home views show.
const latestCourseCount = 3

// DashboardService builds read-side summaries on top of the other
// feature repositories. Counts are computed per request, nothing is
// cached or persisted here.
type DashboardService interface {
	AdminStats(ctx context.Context, caller user.Principal) (*AdminStats, error)
	InstructorHome(ctx context.Context, caller user.Principal) (*InstructorHomeResponse, error)
	StudentHome(ctx context.Context, caller user.Principal) (*StudentHomeResponse, error)
}

type dashboardService struct {
	userRepo       user.UserRepository
	courseRepo     course.CourseRepository
	enrollmentRepo enrollment.EnrollmentRepository
}

func NewService(userRepo user.UserRepository, courseRepo course.CourseRepository, enrollmentRepo enrollment.EnrollmentRepository) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *dashboardService) AdminStats(ctx context.Context, caller user.Principal) (*AdminStats, error) {
	log := config.WithContext(ctx)

	if caller.Role != user.RoleAdmin {
		return nil, ErrForbidden
	}

	students, err := s.userRepo.CountByRole(user.RoleStudent)
	if err != nil {
		log.WithError(err).Error("Failed to count students")
		return nil, err
	}
	instructors, err := s.userRepo.CountByRole(user.RoleInstructor)
	if err != nil {
		log.WithError(err).Error("Failed to count instructors")
		return nil, err
	}
	courses, err := s.courseRepo.Count()
	if err != nil {
		log.WithError(err).Error("Failed to count courses")
		return nil, err
	}

	return &AdminStats{
		Students:    students,
		Instructors: instructors,
		Courses:     courses,
	}, nil
}

func (s *dashboardService) InstructorHome(ctx context.Context, caller user.Principal) (*InstructorHomeResponse, error) {
	log := config.WithContext(ctx)

	if caller.Role != user.RoleInstructor {
		return nil, ErrForbidden
	}

	courses, err := s.courseRepo.ListByInstructor(caller.ID)
	if err != nil {
		log.WithError(err).Error("Failed to list instructor courses")
		return nil, err
	}
	latest, err := s.courseRepo.LatestByInstructor(caller.ID, latestCourseCount)
	if err != nil {
		log.WithError(err).Error("Failed to load latest instructor courses")
		return nil, err
	}

	return &InstructorHomeResponse{
		CourseCount:   int64(len(courses)),
		LatestCourses: latest,
	}, nil
}

func (s *dashboardService) StudentHome(ctx context.Context, caller user.Principal) (*StudentHomeResponse, error) {
	log := config.WithContext(ctx)

	if caller.Role != user.RoleStudent {
		return nil, ErrForbidden
	}

	count, err := s.enrollmentRepo.CountByStudent(caller.ID)
	if err != nil {
		log.WithError(err).Error("Failed to count enrollments")
		return nil, err
	}
	latest, err := s.courseRepo.LatestByEnrolledStudent(caller.ID, latestCourseCount)
	if err != nil {
		log.WithError(err).Error("Failed to load latest enrolled courses")
		return nil, err
	}

	return &StudentHomeResponse{
		EnrollmentCount: count,
		LatestCourses:   latest,
	}, nil
}
