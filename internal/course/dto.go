package course

import "github.com/google/uuid"

type CreateCourseDTO struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InstructorID uuid.UUID `json:"instructor_id"`
}

type UpdateCourseDTO struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	InstructorID *uuid.UUID `json:"instructor_id"`
}
