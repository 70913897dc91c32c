package user

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity-provider principal. Accounts are created and
// authenticated externally; this table only carries the directory data
// the LMS needs to reference them.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Role      Role      `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
