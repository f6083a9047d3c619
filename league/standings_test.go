package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imartinez/fronton-league/models"
)

func intPtr(v int) *int { return &v }

func finishedMatch(team1, team2, winner int, scores [][2]int) models.Match {
	m := models.Match{
		ID:       "m",
		Team1ID:  team1,
		Team2ID:  team2,
		WinnerID: intPtr(winner),
		Status:   models.MatchStatusFinished,
	}
	for i, s := range scores {
		m.Sets[i] = models.MatchSet{Team1Score: intPtr(s[0]), Team2Score: intPtr(s[1])}
	}
	return m
}

func TestComputeStandingsEmptyInputs(t *testing.T) {
	assert.Empty(t, ComputeStandings(nil, nil))

	table := ComputeStandings(makeTeams(3), nil)
	require.Len(t, table, 3)
	for _, row := range table {
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
	}
}

func TestComputeStandingsStraightSetsWin(t *testing.T) {
	teams := makeTeams(2)
	matches := []models.Match{
		finishedMatch(1, 2, 1, [][2]int{{18, 10}, {18, 12}}),
	}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 2)

	winner, loser := table[0], table[1]
	assert.Equal(t, 1, winner.TeamID)
	assert.Equal(t, 1, winner.Played)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 0, winner.Losses)
	assert.Equal(t, 3, winner.Points)

	assert.Equal(t, 2, loser.TeamID)
	assert.Equal(t, 1, loser.Played)
	assert.Equal(t, 0, loser.Wins)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 0, loser.Points)
}

// Worked example: A beats B 18-10, 10-18, 11-5.
func TestComputeStandingsTiebreakerWin(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	matches := []models.Match{
		finishedMatch(1, 2, 1, [][2]int{{18, 10}, {10, 18}, {11, 5}}),
	}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 2)

	a, b := table[0], table[1]
	assert.Equal(t, "A", a.TeamName)
	assert.Equal(t, 1, a.Played)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 2, a.Points)
	assert.Equal(t, 39, a.PointsFor)
	assert.Equal(t, 33, a.PointsAgainst)
	assert.Equal(t, 6, a.PointsDifference)

	assert.Equal(t, "B", b.TeamName)
	assert.Equal(t, 1, b.Played)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 1, b.Points)
	assert.Equal(t, 33, b.PointsFor)
	assert.Equal(t, 39, b.PointsAgainst)
	assert.Equal(t, -6, b.PointsDifference)
}

func TestComputeStandingsPendingMatchIgnored(t *testing.T) {
	teams := makeTeams(2)
	pending := finishedMatch(1, 2, 1, [][2]int{{18, 10}})
	pending.Status = models.MatchStatusPending
	pending.WinnerID = nil

	table := ComputeStandings(teams, []models.Match{pending})
	for _, row := range table {
		assert.Zero(t, row.Played)
		assert.Zero(t, row.PointsFor)
	}
}

func TestComputeStandingsOrphanWinnerSkipped(t *testing.T) {
	teams := makeTeams(2)
	matches := []models.Match{
		finishedMatch(1, 2, 99, [][2]int{{18, 10}, {18, 12}}),
	}

	table := ComputeStandings(teams, matches)
	for _, row := range table {
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
		assert.Zero(t, row.PointsFor)
	}
}

func TestComputeStandingsForeignTeamsExcluded(t *testing.T) {
	teams := makeTeams(2)
	matches := []models.Match{
		// Team 5 is not part of the set, so the whole match is skipped.
		finishedMatch(1, 5, 1, [][2]int{{18, 10}, {18, 12}}),
		finishedMatch(1, 2, 2, [][2]int{{10, 18}, {12, 18}}),
	}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 2)
	assert.Equal(t, 2, table[0].TeamID)
	assert.Equal(t, 1, table[0].Played)
	assert.Equal(t, 1, table[1].Played)
}

func TestComputeStandingsPartialSetsIgnoredInTally(t *testing.T) {
	teams := makeTeams(2)
	m := finishedMatch(1, 2, 1, [][2]int{{18, 10}, {18, 12}})
	// Third set half-recorded: no score contribution.
	m.Sets[2].Team1Score = intPtr(4)

	table := ComputeStandings(teams, []models.Match{m})
	assert.Equal(t, 36, table[0].PointsFor)
	assert.Equal(t, 22, table[0].PointsAgainst)
}

func TestComputeStandingsAccumulatesAcrossMatches(t *testing.T) {
	teams := makeTeams(3)
	matches := []models.Match{
		finishedMatch(1, 2, 1, [][2]int{{18, 10}, {18, 12}}),
		finishedMatch(1, 3, 1, [][2]int{{18, 5}, {10, 18}, {11, 7}}),
		finishedMatch(2, 3, 3, [][2]int{{12, 18}, {14, 18}}),
	}

	table := ComputeStandings(teams, matches)
	require.Len(t, table, 3)

	// Team 1: 3 + 2 points, team 3: 0 + 1 + 3 points, team 2: 0.
	assert.Equal(t, 1, table[0].TeamID)
	assert.Equal(t, 5, table[0].Points)
	assert.Equal(t, 2, table[0].Played)
	assert.Equal(t, 3, table[1].TeamID)
	assert.Equal(t, 4, table[1].Points)
	assert.Equal(t, 2, table[2].TeamID)
	assert.Equal(t, 0, table[2].Points)
	assert.Equal(t, 2, table[2].Played)
}

func TestComputeStandingsSortTiebreaks(t *testing.T) {
	// Equal points: wins decides; equal wins: difference; then points for.
	teams := makeTeams(4)

	matches := []models.Match{
		// 1 beats 2 in straight sets (1: 3pts, 1 win).
		finishedMatch(1, 2, 1, [][2]int{{18, 6}, {18, 6}}),
		// 3 beats 4 in straight sets (3: 3pts, 1 win) with a worse margin.
		finishedMatch(3, 4, 3, [][2]int{{18, 16}, {18, 16}}),
	}

	result := ComputeStandings(teams, matches)
	require.Len(t, result, 4)
	// Both on 3 points and 1 win; team 1 leads on difference (+24 vs +4).
	assert.Equal(t, 1, result[0].TeamID)
	assert.Equal(t, 3, result[1].TeamID)
}

func TestComputeStandingsStableForEqualTeams(t *testing.T) {
	teams := makeTeams(3)
	table := ComputeStandings(teams, nil)
	// No matches: insertion order of the team set is preserved.
	for i, row := range table {
		assert.Equal(t, teams[i].ID, row.TeamID)
	}
}

func TestComputeStandingsDoesNotMutateInputs(t *testing.T) {
	teams := makeTeams(2)
	matches := []models.Match{
		finishedMatch(1, 2, 1, [][2]int{{18, 10}, {18, 12}}),
	}
	originalMatch := matches[0]

	ComputeStandings(teams, matches)
	assert.Equal(t, originalMatch, matches[0])
}
