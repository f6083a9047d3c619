package league

import (
	"sort"

	"github.com/imartinez/fronton-league/models"
)

// ComputeStandings derives the category table from finished matches.
// Only matches whose both teams belong to the given team set count; a
// match whose winner id matches neither listed team is skipped. The
// returned table is sorted by points, then wins, then point difference,
// then points for, all descending; fully-equal teams keep the team
// set's order.
//
// The computation is pure: inputs are never mutated and a fresh table
// is built on every call.
func ComputeStandings(teams []models.Team, matches []models.Match) []models.Standing {
	table := make([]models.Standing, len(teams))
	index := make(map[int]*models.Standing, len(teams))
	for i, team := range teams {
		table[i] = models.Standing{TeamID: team.ID, TeamName: team.Name}
		index[team.ID] = &table[i]
	}

	for i := range matches {
		match := &matches[i]
		if match.Status != models.MatchStatusFinished || match.WinnerID == nil {
			continue
		}

		side1, ok1 := index[match.Team1ID]
		side2, ok2 := index[match.Team2ID]
		if !ok1 || !ok2 {
			continue
		}

		var winner, loser *models.Standing
		switch *match.WinnerID {
		case match.Team1ID:
			winner, loser = side1, side2
		case match.Team2ID:
			winner, loser = side2, side1
		default:
			// Winner referencing neither team: stale data, skip.
			continue
		}

		for _, set := range match.Sets {
			if !set.Played() {
				continue
			}
			side1.PointsFor += *set.Team1Score
			side1.PointsAgainst += *set.Team2Score
			side2.PointsFor += *set.Team2Score
			side2.PointsAgainst += *set.Team1Score
		}

		winner.Played++
		winner.Wins++
		loser.Played++
		loser.Losses++

		wins1, wins2 := match.SetWins()
		winnerSets, loserSets := wins1, wins2
		if winner == side2 {
			winnerSets, loserSets = wins2, wins1
		}
		switch {
		case winnerSets == 2 && loserSets == 0:
			winner.Points += 3
		case winnerSets == 2 && loserSets == 1:
			winner.Points += 2
			loser.Points++
		}

		side1.PointsDifference = side1.PointsFor - side1.PointsAgainst
		side2.PointsDifference = side2.PointsFor - side2.PointsAgainst
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.PointsDifference != b.PointsDifference {
			return a.PointsDifference > b.PointsDifference
		}
		return a.PointsFor > b.PointsFor
	})

	return table
}
