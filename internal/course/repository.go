package course

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(c *Course) error
	FindByID(id uuid.UUID) (*Course, error)
	ListAll() ([]*Course, error)
	ListByInstructor(instructorID uuid.UUID) ([]*Course, error)
	ListByEnrolledStudent(studentID uuid.UUID) ([]*Course, error)
	LatestByInstructor(instructorID uuid.UUID, limit int) ([]*Course, error)
	LatestByEnrolledStudent(studentID uuid.UUID, limit int) ([]*Course, error)
	Update(c *Course) error
	DeleteCascade(id uuid.UUID) error
	Count() (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(c *Course) error {
	return r.db.Create(c).Error
}

func (r *courseRepository) FindByID(id uuid.UUID) (*Course, error) {
	var c Course
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) ListAll() ([]*Course, error) {
	var courses []*Course
	if err := r.db.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ListByInstructor(instructorID uuid.UUID) ([]*Course, error) {
	var courses []*Course
	if err := r.db.
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ListByEnrolledStudent(studentID uuid.UUID) ([]*Course, error) {
	var courses []*Course
	if err := r.db.
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Order("courses.created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) LatestByInstructor(instructorID uuid.UUID, limit int) ([]*Course, error) {
	var courses []*Course
	if err := r.db.
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) LatestByEnrolledStudent(studentID uuid.UUID, limit int) ([]*Course, error) {
	var courses []*Course
	if err := r.db.
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Order("courses.created_at DESC").
		Limit(limit).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(c *Course) error {
	return r.db.Save(c).Error
}

// DeleteCascade removes a course and everything hanging off it. The
// student_answer and enrollment edges carry no ON DELETE CASCADE, so they
// are cleaned explicitly, answers first, inside one transaction.
func (r *courseRepository) DeleteCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM student_answers WHERE question_id IN (
				SELECT id FROM questions WHERE quiz_id IN (
					SELECT id FROM quizzes WHERE course_id = ?))`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			`DELETE FROM questions WHERE quiz_id IN (
				SELECT id FROM quizzes WHERE course_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM quizzes WHERE course_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM enrollments WHERE course_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM modules WHERE course_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM materials WHERE course_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&Course{}, "id = ?", id).Error
	})
}

func (r *courseRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
