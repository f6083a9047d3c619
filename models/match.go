package models

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusFinished MatchStatus = "finished"
)

// SetsPerMatch is fixed: sets 1-2 are regular, set 3 is the tiebreaker.
const SetsPerMatch = 3

// MatchSet is one game within a match. Nil scores mean the set has not
// been played.
type MatchSet struct {
	Team1Score *int `json:"team1_score"`
	Team2Score *int `json:"team2_score"`
}

// Played reports whether both scores of the set are recorded.
func (s MatchSet) Played() bool {
	return s.Team1Score != nil && s.Team2Score != nil
}

type Match struct {
	ID         string                 `json:"id" db:"id"`
	CategoryID int                    `json:"category_id" db:"category_id"`
	Team1ID    int                    `json:"team1_id" db:"team1_id"`
	Team2ID    int                    `json:"team2_id" db:"team2_id"`
	Sets       [SetsPerMatch]MatchSet `json:"sets" db:"-"`
	WinnerID   *int                   `json:"winner_id,omitempty" db:"winner_id"`
	Status     MatchStatus            `json:"status" db:"status"`
	Date       *string                `json:"date,omitempty" db:"date"`
	CreatedAt  time.Time              `json:"created_at" db:"created_at"`

	Team1 *Team `json:"team1,omitempty" db:"-"`
	Team2 *Team `json:"team2,omitempty" db:"-"`
}

// SetWins counts completed sets won by each side, in listing order.
func (m *Match) SetWins() (team1 int, team2 int) {
	for _, set := range m.Sets {
		if !set.Played() {
			continue
		}
		switch {
		case *set.Team1Score > *set.Team2Score:
			team1++
		case *set.Team2Score > *set.Team1Score:
			team2++
		}
	}
	return team1, team2
}
