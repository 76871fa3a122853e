package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxDescriptionLength matches the description column size.
const MaxDescriptionLength = 512

// Exercise is one log entry owned by a user. Date holds a calendar day at UTC midnight.
type Exercise struct {
	ID              string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID          string    `gorm:"type:char(36);not null;index:idx_exercises_user_date,priority:1" json:"user_id"`
	Description     string    `gorm:"size:512;not null" json:"description"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Date            time.Time `gorm:"not null;index:idx_exercises_user_date,priority:2" json:"date"`
	CreatedAt       time.Time `json:"created_at"`
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
