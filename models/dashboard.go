package models

type DashboardStats struct {
	PlayersTotal     int `json:"players_total"`
	TeamsTotal       int `json:"teams_total"`
	CategoriesTotal  int `json:"categories_total"`
	ActiveCategories int `json:"active_categories"`
	MatchesTotal     int `json:"matches_total"`
	MatchesFinished  int `json:"matches_finished"`

	RecentResults []Match `json:"recent_results"`
}
