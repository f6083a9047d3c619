package models

import "time"

// CategoryStatus mirrors the category_status ENUM in the database.
type CategoryStatus string

const (
	CategoryStatusActive    CategoryStatus = "active"
	CategoryStatusCompleted CategoryStatus = "completed"
)

// Category is a named grouping of teams sharing one round-robin
// schedule and standings table.
type Category struct {
	ID        int            `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	TwoLegged bool           `json:"two_legged" db:"two_legged"`
	Status    CategoryStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
