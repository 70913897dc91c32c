package enrollment

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/user"
)

// Enrollment is one student's membership in one course. The composite
// unique index backs the at-most-one-row-per-(student, course) invariant
// even under concurrent reconciliation.
type Enrollment struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	CourseID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course" json:"course_id"`
	Student   user.User     `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Course    course.Course `gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}
