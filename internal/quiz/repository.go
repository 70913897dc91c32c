package quiz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(q *Quiz) error
	GetByID(id uuid.UUID) (*Quiz, error)
	ListAll() ([]*Quiz, error)
	ListByInstructor(instructorID uuid.UUID) ([]*Quiz, error)
	ListByEnrolledStudent(studentID uuid.UUID) ([]*Quiz, error)
	DeleteCascade(id uuid.UUID) error

	AddQuestion(q *Question) error
	GetQuestion(id uuid.UUID) (*Question, error)
	AddAnswerOption(o *AnswerOption) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) GetByID(id uuid.UUID) (*Quiz, error) {
	var quiz Quiz
	if err := r.db.
		Preload("Questions").
		Preload("Questions.AnswerOptions").
		First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ListAll() ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// ListByInstructor filters at query time. The inner join drops quizzes
// with a null course_id, which are invisible to instructors.
func (r *quizRepository) ListByInstructor(instructorID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Joins("JOIN courses ON courses.id = quizzes.course_id").
		Where("courses.instructor_id = ?", instructorID).
		Order("quizzes.created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) ListByEnrolledStudent(studentID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Joins("JOIN enrollments ON enrollments.course_id = quizzes.course_id").
		Where("enrollments.student_id = ?", studentID).
		Order("quizzes.created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// DeleteCascade removes a quiz in the order the non-cascading edges
// require: student answers referencing the quiz's options first, then
// questions (options cascade at the store), then the quiz row.
func (r *quizRepository) DeleteCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var optionIDs []uuid.UUID
		if err := tx.Model(&AnswerOption{}).
			Joins("JOIN questions ON questions.id = answer_options.question_id").
			Where("questions.quiz_id = ?", id).
			Pluck("answer_options.id", &optionIDs).Error; err != nil {
			return err
		}

		if len(optionIDs) > 0 {
			if err := tx.
				Where("answer_option_id IN ?", optionIDs).
				Delete(&StudentAnswer{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("quiz_id = ?", id).Delete(&Question{}).Error; err != nil {
			return err
		}

		return tx.Delete(&Quiz{}, "id = ?", id).Error
	})
}

func (r *quizRepository) AddQuestion(q *Question) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) GetQuestion(id uuid.UUID) (*Question, error) {
	var question Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *quizRepository) AddAnswerOption(o *AnswerOption) error {
	return r.db.Create(o).Error
}
