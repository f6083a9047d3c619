package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

type CategoryExport struct {
	Filename string
	Content  []byte
}

type ExportService interface {
	// ExportCategory builds an XLSX workbook with Teams, Matches and
	// Standings sheets for one category.
	ExportCategory(ctx context.Context, categoryID int) (*CategoryExport, error)
}

type exportService struct {
	categoryRepo repositories.CategoryRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	standings    StandingsService
}

func NewExportService(
	categoryRepo repositories.CategoryRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
) ExportService {
	return &exportService{
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		standings:    standings,
	}
}

func (s *exportService) ExportCategory(ctx context.Context, categoryID int) (*CategoryExport, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var (
		teams   []*models.Team
		matches []*models.Match
		table   []models.Standing
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByCategory(gctx, categoryID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByCategory(gctx, categoryID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		table, err = s.standings.GetCategoryStandings(gctx, categoryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load export data for category %d: %w", categoryID, err)
	}

	teamNames := teamNameIndex(teams)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeTeamsSheet(f, teams); err != nil {
		return nil, err
	}
	if err := writeMatchesSheet(f, matches, teamNames); err != nil {
		return nil, err
	}
	if err := writeStandingsSheet(f, table); err != nil {
		return nil, err
	}
	// Drop the default sheet created by excelize.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return &CategoryExport{
		Filename: fmt.Sprintf("category_%d_%s.xlsx", category.ID, category.Name),
		Content:  buf.Bytes(),
	}, nil
}

func teamNameIndex(teams []*models.Team) map[int]string {
	names := make(map[int]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
	}
	return names
}

func writeTeamsSheet(f *excelize.File, teams []*models.Team) error {
	const sheet = "Teams"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "Name"}); err != nil {
		return err
	}
	for i, team := range teams {
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{team.ID, team.Name}); err != nil {
			return err
		}
	}
	return nil
}

func writeMatchesSheet(f *excelize.File, matches []*models.Match, teamNames map[int]string) error {
	const sheet = "Matches"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Team 1", "Team 2", "Set 1", "Set 2", "Set 3", "Winner", "Status", "Date"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, match := range matches {
		winner := ""
		if match.WinnerID != nil {
			winner = teamNames[*match.WinnerID]
		}
		date := ""
		if match.Date != nil {
			date = *match.Date
		}
		row := []interface{}{
			teamNames[match.Team1ID],
			teamNames[match.Team2ID],
			formatSet(match.Sets[0]),
			formatSet(match.Sets[1]),
			formatSet(match.Sets[2]),
			winner,
			string(match.Status),
			date,
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeStandingsSheet(f *excelize.File, table []models.Standing) error {
	const sheet = "Standings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Pos", "Team", "Played", "Wins", "Losses", "Points", "For", "Against", "Diff"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range table {
		values := []interface{}{
			i + 1, row.TeamName, row.Played, row.Wins, row.Losses,
			row.Points, row.PointsFor, row.PointsAgainst, row.PointsDifference,
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func formatSet(set models.MatchSet) string {
	if !set.Played() {
		return ""
	}
	return fmt.Sprintf("%d-%d", *set.Team1Score, *set.Team2Score)
}
