package material

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/course"
)

type Material struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title     string        `gorm:"type:text;not null" json:"title"`
	FilePath  string        `gorm:"type:text" json:"file_path,omitempty"`
	FileType  string        `gorm:"type:text" json:"file_type,omitempty"`
	VideoLink string        `gorm:"type:text" json:"video_link,omitempty"`
	CourseID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"course_id"`
	Course    course.Course `gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
