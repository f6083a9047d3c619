package models

import "time"

type Team struct {
	ID         int       `json:"id" db:"id"`
	CategoryID int       `json:"category_id" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// Roster, loaded from team_players by the service layer.
	Players []Player `json:"players,omitempty" db:"-"`
}
