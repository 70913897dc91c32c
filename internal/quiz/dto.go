package quiz

import "github.com/google/uuid"

type CreateQuizDTO struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes"`
	CourseID        *uuid.UUID `json:"course_id"`
}

type AddQuestionDTO struct {
	Text string `json:"text"`
}

type AddAnswerOptionDTO struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Student-facing projection of a quiz: the is_correct flags never leave
// the server before submission.
type StudentQuizView struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	DurationMinutes int                 `json:"duration_minutes"`
	CourseID        *uuid.UUID          `json:"course_id,omitempty"`
	Questions       []StudentQuestionView `json:"questions"`
}

type StudentQuestionView struct {
	ID      uuid.UUID           `json:"id"`
	Text    string              `json:"text"`
	Options []StudentOptionView `json:"options"`
}

type StudentOptionView struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

func NewStudentQuizView(q *Quiz) *StudentQuizView {
	view := &StudentQuizView{
		ID:              q.ID,
		Title:           q.Title,
		Description:     q.Description,
		DurationMinutes: q.DurationMinutes,
		CourseID:        q.CourseID,
		Questions:       make([]StudentQuestionView, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		qv := StudentQuestionView{
			ID:      question.ID,
			Text:    question.Text,
			Options: make([]StudentOptionView, 0, len(question.AnswerOptions)),
		}
		for _, opt := range question.AnswerOptions {
			qv.Options = append(qv.Options, StudentOptionView{ID: opt.ID, Text: opt.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}
