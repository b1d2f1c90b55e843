package user

import (
	"time"
)

// User is a host: the owner of bookable events whose Google Calendar is
// mutated on their behalf. IdentityID is the identity-provider subject id
// used to look up the host's delegated OAuth tokens.
type User struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	IdentityID string `gorm:"type:varchar(255);not null;unique" json:"identity_id"`
	Email      string `gorm:"type:varchar(255);not null;unique" json:"email"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
