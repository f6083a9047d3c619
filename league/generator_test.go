package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imartinez/fronton-league/models"
)

func makeTeams(n int) []models.Team {
	teams := make([]models.Team, n)
	for i := range teams {
		teams[i] = models.Team{ID: i + 1, Name: string(rune('A' + i))}
	}
	return teams
}

func TestGenerateMatchesSingleLegCount(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 10} {
		matches := GenerateMatches(makeTeams(n), 7, false)
		assert.Len(t, matches, n*(n-1)/2, "n=%d", n)
	}
}

func TestGenerateMatchesTwoLeggedDoublesCount(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		matches := GenerateMatches(makeTeams(n), 7, true)
		assert.Len(t, matches, n*(n-1), "n=%d", n)
	}
}

func TestGenerateMatchesTooFewTeams(t *testing.T) {
	assert.Empty(t, GenerateMatches(nil, 1, false))
	assert.Empty(t, GenerateMatches(makeTeams(0), 1, true))
	assert.Empty(t, GenerateMatches(makeTeams(1), 1, false))
}

func TestGenerateMatchesFixtureDefaults(t *testing.T) {
	matches := GenerateMatches(makeTeams(3), 42, false)
	require.Len(t, matches, 3)

	for _, m := range matches {
		assert.Equal(t, 42, m.CategoryID)
		assert.Equal(t, models.MatchStatusPending, m.Status)
		assert.Nil(t, m.WinnerID)
		assert.Nil(t, m.Date)
		assert.NotEmpty(t, m.ID)
		for _, set := range m.Sets {
			assert.Nil(t, set.Team1Score)
			assert.Nil(t, set.Team2Score)
		}
	}
}

func TestGenerateMatchesUniqueIDs(t *testing.T) {
	matches := GenerateMatches(makeTeams(8), 1, true)
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestGenerateMatchesDeterministicPairOrder(t *testing.T) {
	matches := GenerateMatches(makeTeams(3), 1, false)
	require.Len(t, matches, 3)

	assert.Equal(t, 1, matches[0].Team1ID)
	assert.Equal(t, 2, matches[0].Team2ID)
	assert.Equal(t, 1, matches[1].Team1ID)
	assert.Equal(t, 3, matches[1].Team2ID)
	assert.Equal(t, 2, matches[2].Team1ID)
	assert.Equal(t, 3, matches[2].Team2ID)
}

func TestGenerateMatchesSecondLegSwapsSides(t *testing.T) {
	matches := GenerateMatches(makeTeams(3), 1, true)
	require.Len(t, matches, 6)

	// First legs in pair order, then second legs in the same order.
	for i := 0; i < 3; i++ {
		first, second := matches[i], matches[i+3]
		assert.Equal(t, first.Team1ID, second.Team2ID)
		assert.Equal(t, first.Team2ID, second.Team1ID)
	}
}

func TestGenerateMatchesDoesNotMutateInput(t *testing.T) {
	teams := makeTeams(4)
	original := make([]models.Team, len(teams))
	copy(original, teams)

	GenerateMatches(teams, 1, true)
	assert.Equal(t, original, teams)
}
