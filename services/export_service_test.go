package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/imartinez/fronton-league/models"
)

func TestExportCategoryWorkbook(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(&models.Category{ID: 1, Name: "Primera", Status: models.CategoryStatusActive})
	teamRepo := newFakeTeamRepo(
		&models.Team{ID: 1, CategoryID: 1, Name: "Los Vetustas"},
		&models.Team{ID: 2, CategoryID: 1, Name: "Pelotazo"},
	)
	match := pendingMatch("m1", 1, 2)
	match.Status = models.MatchStatusFinished
	match.WinnerID = intPtr(1)
	match.Sets[0] = models.MatchSet{Team1Score: intPtr(18), Team2Score: intPtr(10)}
	match.Sets[1] = models.MatchSet{Team1Score: intPtr(18), Team2Score: intPtr(12)}
	matchRepo := newFakeMatchRepo(match)

	standings := NewStandingsService(categoryRepo, teamRepo, matchRepo)
	svc := NewExportService(categoryRepo, teamRepo, matchRepo, standings)

	export, err := svc.ExportCategory(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "category_1_Primera.xlsx", export.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Teams", "Matches", "Standings"}, f.GetSheetList(),
		"the default sheet must not survive")

	teams, err := f.GetRows("Teams")
	require.NoError(t, err)
	assert.Len(t, teams, 3, "header plus one row per team")

	matches, err := f.GetRows("Matches")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Contains(t, matches[1], "18-10")
	assert.Contains(t, matches[1], "Los Vetustas")

	table, err := f.GetRows("Standings")
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "Los Vetustas", table[1][1], "winner leads the table")
}

func TestExportCategoryUnknown(t *testing.T) {
	standings := NewStandingsService(newFakeCategoryRepo(), newFakeTeamRepo(), newFakeMatchRepo())
	svc := NewExportService(newFakeCategoryRepo(), newFakeTeamRepo(), newFakeMatchRepo(), standings)

	_, err := svc.ExportCategory(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
