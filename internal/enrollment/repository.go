package enrollment

import (
	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository interface {
	ListAll() ([]*Enrollment, error)
	ListByCourse(courseID uuid.UUID) ([]*Enrollment, error)
	ListByStudent(studentID uuid.UUID) ([]*Enrollment, error)
	ListByInstructor(instructorID uuid.UUID) ([]*Enrollment, error)
	IsEnrolled(studentID, courseID uuid.UUID) (bool, error)
	CountByStudent(studentID uuid.UUID) (int64, error)
	// Reconcile makes the course roster equal to the desired set. The
	// current-roster read, the diff and the writes all run in one
	// transaction holding a row lock on the course, so two reconciles of
	// the same course serialize instead of interleaving their diffs.
	Reconcile(courseID uuid.UUID, desired []uuid.UUID) (added, removed int, err error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) ListAll() ([]*Enrollment, error) {
	var enrollments []*Enrollment
	if err := r.db.Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ListByCourse(courseID uuid.UUID) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	if err := r.db.
		Where("course_id = ?", courseID).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ListByStudent(studentID uuid.UUID) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	if err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ListByInstructor(instructorID uuid.UUID) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	if err := r.db.
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ?", instructorID).
		Order("enrollments.created_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) IsEnrolled(studentID, courseID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepository) CountByStudent(studentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&Enrollment{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *enrollmentRepository) Reconcile(courseID uuid.UUID, desired []uuid.UUID) (added, removed int, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		// SELECT ... FOR UPDATE on the course row. A second reconcile of
		// the same course blocks here until this one commits, so its diff
		// is computed against the final roster, never a stale snapshot.
		var locked course.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, "id = ?", courseID).Error; err != nil {
			return err
		}

		var enrollments []*Enrollment
		if err := tx.Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
			return err
		}
		current := make([]uuid.UUID, 0, len(enrollments))
		for _, e := range enrollments {
			current = append(current, e.StudentID)
		}

		toAdd, toRemove := diffRoster(current, desired)
		for _, studentID := range toAdd {
			e := &Enrollment{
				StudentID: studentID,
				CourseID:  courseID,
			}
			if err := tx.Create(e).Error; err != nil {
				return err
			}
		}
		if len(toRemove) > 0 {
			if err := tx.
				Where("course_id = ? AND student_id IN ?", courseID, toRemove).
				Delete(&Enrollment{}).Error; err != nil {
				return err
			}
		}

		added = len(toAdd)
		removed = len(toRemove)
		return nil
	})
	return added, removed, err
}
