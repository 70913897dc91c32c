package module

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/course"
)

// Module is a content unit inside a course. The path fields point into
// an external file store and are treated as opaque strings.
type Module struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title     string        `gorm:"type:text;not null" json:"title"`
	Content   string        `gorm:"type:text" json:"content,omitempty"`
	PdfPath   string        `gorm:"type:text" json:"pdf_path,omitempty"`
	WordPath  string        `gorm:"type:text" json:"word_path,omitempty"`
	PptPath   string        `gorm:"type:text" json:"ppt_path,omitempty"`
	AudioPath string        `gorm:"type:text" json:"audio_path,omitempty"`
	VideoPath string        `gorm:"type:text" json:"video_path,omitempty"`
	CourseID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"course_id"`
	Course    course.Course `gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
