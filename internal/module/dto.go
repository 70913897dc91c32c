package module

import "github.com/google/uuid"

type CreateModuleDTO struct {
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	PdfPath   string    `json:"pdf_path,omitempty"`
	WordPath  string    `json:"word_path,omitempty"`
	PptPath   string    `json:"ppt_path,omitempty"`
	AudioPath string    `json:"audio_path,omitempty"`
	VideoPath string    `json:"video_path,omitempty"`
	CourseID  uuid.UUID `json:"course_id"`
}

type UpdateModuleDTO struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	PdfPath   *string `json:"pdf_path,omitempty"`
	WordPath  *string `json:"word_path,omitempty"`
	PptPath   *string `json:"ppt_path,omitempty"`
	AudioPath *string `json:"audio_path,omitempty"`
	VideoPath *string `json:"video_path,omitempty"`
}
