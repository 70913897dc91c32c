package enrollment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/config"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/user"
	"gorm.io/gorm"
)

var (
	ErrCourseNotFound    = errors.New("course does not exist")
	ErrForbidden         = errors.New("forbidden")
	ErrReconcileConflict = errors.New("roster changed concurrently")
)

type EnrollmentService interface {
	// Reconcile makes the course roster equal to the desired student set,
	// inserting and deleting only the difference.
	Reconcile(ctx context.Context, caller user.Principal, courseID uuid.UUID, desiredStudentIDs []uuid.UUID) error
	List(ctx context.Context, caller user.Principal) ([]*Enrollment, error)
}

type enrollmentService struct {
	repo       EnrollmentRepository
	courseRepo course.CourseRepository
}

func NewService(repo EnrollmentRepository, courseRepo course.CourseRepository) EnrollmentService {
	return &enrollmentService{repo: repo, courseRepo: courseRepo}
}

// diffRoster computes the insert and delete sets between the current and
// desired membership, by exact ID match.
func diffRoster(current, desired []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	currentSet := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	desiredSet := make(map[uuid.UUID]bool, len(desired))
	for _, id := range desired {
		desiredSet[id] = true
	}

	for _, id := range desired {
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if !desiredSet[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *enrollmentService) Reconcile(ctx context.Context, caller user.Principal, courseID uuid.UUID, desiredStudentIDs []uuid.UUID) error {
	log := config.WithContext(ctx)

	if caller.Role != user.RoleAdmin {
		log.WithField("caller_id", caller.ID).Warn("Non-admin attempted to reconcile roster")
		return ErrForbidden
	}

	c, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		log.WithError(err).Error("Failed to find course for roster reconciliation")
		return err
	}
	if c == nil {
		return ErrCourseNotFound
	}

	desired := dedupe(desiredStudentIDs)

	added, removed, err := s.repo.Reconcile(courseID, desired)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// course deleted between the existence check and the lock
			return ErrCourseNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			log.WithField("course_id", courseID).Warn("Concurrent roster reconciliation detected")
			return ErrReconcileConflict
		}
		log.WithError(err).Error("Failed to reconcile roster")
		return err
	}

	if added == 0 && removed == 0 {
		log.WithField("course_id", courseID).Info("Roster already matches desired set")
		return nil
	}

	log.WithFields(map[string]interface{}{
		"course_id": courseID,
		"added":     added,
		"removed":   removed,
	}).Info("Roster reconciled successfully")
	return nil
}

func (s *enrollmentService) List(ctx context.Context, caller user.Principal) ([]*Enrollment, error) {
	log := config.WithContext(ctx)

	var (
		enrollments []*Enrollment
		err         error
	)
	switch caller.Role {
	case user.RoleAdmin:
		enrollments, err = s.repo.ListAll()
	case user.RoleInstructor:
		enrollments, err = s.repo.ListByInstructor(caller.ID)
	case user.RoleStudent:
		enrollments, err = s.repo.ListByStudent(caller.ID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		log.WithError(err).Error("Failed to list enrollments")
		return nil, err
	}
	return enrollments, nil
}
