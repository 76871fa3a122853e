package model

import "time"

// ExerciseRecorded is published after an exercise is stored.
type ExerciseRecorded struct {
	ExerciseID      string    `json:"exerciseId"`
	UserID          string    `json:"userId"`
	Username        string    `json:"username"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	Date            string    `json:"date"`
	RecordedAt      time.Time `json:"recordedAt"`
}
