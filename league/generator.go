package league

import (
	"github.com/google/uuid"

	"github.com/imartinez/fronton-league/models"
)

// GenerateMatches creates the round-robin fixture list for a category.
// Every unordered pair of teams meets once; with twoLegged a second
// fixture per pair is added with home/away swapped. Output order is
// deterministic: all first legs in pair order (i<j), then all second
// legs in the same pair order. Callers that want a randomized calendar
// shuffle the result themselves.
//
// Fewer than two teams yields an empty schedule, not an error. The
// input slice is never mutated.
func GenerateMatches(teams []models.Team, categoryID int, twoLegged bool) []models.Match {
	if len(teams) < 2 {
		return []models.Match{}
	}

	pairs := len(teams) * (len(teams) - 1) / 2
	total := pairs
	if twoLegged {
		total = pairs * 2
	}
	matches := make([]models.Match, 0, total)

	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			matches = append(matches, newFixture(categoryID, teams[i].ID, teams[j].ID))
		}
	}

	if twoLegged {
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				matches = append(matches, newFixture(categoryID, teams[j].ID, teams[i].ID))
			}
		}
	}

	return matches
}

func newFixture(categoryID, homeID, awayID int) models.Match {
	return models.Match{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Team1ID:    homeID,
		Team2ID:    awayID,
		Status:     models.MatchStatusPending,
	}
}
