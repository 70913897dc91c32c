package quiz

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string     `gorm:"type:text;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes int        `gorm:"not null;default:0" json:"duration_minutes"`
	CourseID        *uuid.UUID `gorm:"type:uuid;index" json:"course_id,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Text   string    `gorm:"type:text;not null" json:"text"`

	AnswerOptions []AnswerOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answer_options,omitempty"`
}

type AnswerOption struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
}

// StudentAnswer is the permanent attempt record. The composite unique
// index on (student_id, question_id) is what makes a submission
// one-time: a concurrent duplicate submit trips it and rolls back. The
// question and answer-option edges deliberately do not cascade, so quiz
// deletion has to clean these rows first.
type StudentAnswer struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_student_answers_student_question" json:"student_id"`
	QuestionID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_student_answers_student_question" json:"question_id"`
	AnswerOptionID uuid.UUID    `gorm:"type:uuid;not null;index" json:"answer_option_id"`
	Question       Question     `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	AnswerOption   AnswerOption `gorm:"foreignKey:AnswerOptionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
}
