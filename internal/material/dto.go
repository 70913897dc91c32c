package material

import "github.com/google/uuid"

type CreateMaterialDTO struct {
	Title     string    `json:"title"`
	FilePath  string    `json:"file_path,omitempty"`
	FileType  string    `json:"file_type,omitempty"`
	VideoLink string    `json:"video_link,omitempty"`
	CourseID  uuid.UUID `json:"course_id"`
}

type UpdateMaterialDTO struct {
	Title     *string `json:"title,omitempty"`
	FilePath  *string `json:"file_path,omitempty"`
	FileType  *string `json:"file_type,omitempty"`
	VideoLink *string `json:"video_link,omitempty"`
}
