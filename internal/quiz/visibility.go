package quiz

import (
	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

// Visibility is the per-role capability deciding which quizzes a caller
// may see. Each role implements the same contract; callers dispatch once
// instead of branching on the role at every site. Filtering happens in
// the store query, never by loading the full set and trimming in memory.
type Visibility interface {
	List(callerID uuid.UUID) ([]*Quiz, error)
	CanAccess(callerID uuid.UUID, q *Quiz) (bool, error)
}

func (s *quizService) visibilityFor(role user.Role) (Visibility, error) {
	switch role {
	case user.RoleAdmin:
		return adminVisibility{s}, nil
	case user.RoleInstructor:
		return instructorVisibility{s}, nil
	case user.RoleStudent:
		return studentVisibility{s}, nil
	default:
		return nil, ErrForbidden
	}
}

type adminVisibility struct{ s *quizService }

func (v adminVisibility) List(callerID uuid.UUID) ([]*Quiz, error) {
	return v.s.repo.ListAll()
}

func (v adminVisibility) CanAccess(callerID uuid.UUID, q *Quiz) (bool, error) {
	return true, nil
}

type instructorVisibility struct{ s *quizService }

func (v instructorVisibility) List(callerID uuid.UUID) ([]*Quiz, error) {
	return v.s.repo.ListByInstructor(callerID)
}

func (v instructorVisibility) CanAccess(callerID uuid.UUID, q *Quiz) (bool, error) {
	if q.CourseID == nil {
		return false, nil
	}
	c, err := v.s.courseRepo.FindByID(*q.CourseID)
	if err != nil {
		return false, err
	}
	return c != nil && c.InstructorID == callerID, nil
}

type studentVisibility struct{ s *quizService }

func (v studentVisibility) List(callerID uuid.UUID) ([]*Quiz, error) {
	return v.s.repo.ListByEnrolledStudent(callerID)
}

func (v studentVisibility) CanAccess(callerID uuid.UUID, q *Quiz) (bool, error) {
	if q.CourseID == nil {
		return false, nil
	}
	return v.s.enrollmentRepo.IsEnrolled(callerID, *q.CourseID)
}
