package enrollment

import "github.com/google/uuid"

type ReconcileRosterDTO struct {
	StudentIDs []uuid.UUID `json:"student_ids"`
}
