package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxUsernameLength matches the username column size.
const MaxUsernameLength = 128

// User is a registered username. Usernames are indexed but not unique.
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Username  string    `gorm:"size:128;not null;index" json:"username"`
	CreatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
