package submission

import "github.com/google/uuid"

// SubmitQuizDTO carries the student's selections keyed by question ID.
// Entries pointing outside the quiz are tolerated and ignored.
type SubmitQuizDTO struct {
	Selections map[uuid.UUID]uuid.UUID `json:"selections"`
}

type ScoreResult struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type ReportRow struct {
	StudentID  uuid.UUID `json:"student_id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
}

type CanSubmitResponse struct {
	CanSubmit bool `json:"can_submit"`
}
