package submission

import (
	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/quiz"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	// HasSubmission reports whether any answer row exists for the student
	// on a question of the given quiz. This durable fact, not session
	// state, is what decides "already taken".
	HasSubmission(studentID, quizID uuid.UUID) (bool, error)
	SaveAnswers(answers []*quiz.StudentAnswer) error
	ListByQuizAndStudent(quizID, studentID uuid.UUID) ([]*quiz.StudentAnswer, error)
	ListByQuizAndCourse(quizID, courseID uuid.UUID) ([]*quiz.StudentAnswer, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) HasSubmission(studentID, quizID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&quiz.StudentAnswer{}).
		Joins("JOIN questions ON questions.id = student_answers.question_id").
		Where("questions.quiz_id = ? AND student_answers.student_id = ?", quizID, studentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveAnswers persists the whole attempt atomically. The composite
// unique index on (student_id, question_id) makes a concurrent duplicate
// submission fail with gorm.ErrDuplicatedKey and roll back entirely.
func (r *submissionRepository) SaveAnswers(answers []*quiz.StudentAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&answers).Error
	})
}

func (r *submissionRepository) ListByQuizAndStudent(quizID, studentID uuid.UUID) ([]*quiz.StudentAnswer, error) {
	var answers []*quiz.StudentAnswer
	if err := r.db.
		Preload("AnswerOption").
		Joins("JOIN questions ON questions.id = student_answers.question_id").
		Where("questions.quiz_id = ? AND student_answers.student_id = ?", quizID, studentID).
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// ListByQuizAndCourse returns the quiz's answer rows for students still
// enrolled in the course, filtered in the query itself.
func (r *submissionRepository) ListByQuizAndCourse(quizID, courseID uuid.UUID) ([]*quiz.StudentAnswer, error) {
	var answers []*quiz.StudentAnswer
	if err := r.db.
		Preload("AnswerOption").
		Joins("JOIN questions ON questions.id = student_answers.question_id").
		Joins("JOIN enrollments ON enrollments.student_id = student_answers.student_id AND enrollments.course_id = ?", courseID).
		Where("questions.quiz_id = ?", quizID).
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}
