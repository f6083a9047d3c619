package models

// Standing is a derived row of a category table. It is recomputed from
// finished matches on every query and never persisted.
type Standing struct {
	TeamID           int    `json:"team_id"`
	TeamName         string `json:"team_name"`
	Played           int    `json:"played"`
	Wins             int    `json:"wins"`
	Losses           int    `json:"losses"`
	Points           int    `json:"points"`
	PointsFor        int    `json:"points_for"`
	PointsAgainst    int    `json:"points_against"`
	PointsDifference int    `json:"points_difference"`
}
