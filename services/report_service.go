package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
	"github.com/imartinez/fronton-league/storage"
)

type CategoryReport struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ReportService interface {
	// GenerateReport renders a PDF with the category standings and
	// results, uploads it to object storage and returns the public URL.
	GenerateReport(ctx context.Context, categoryID int) (*CategoryReport, error)
}

type reportService struct {
	categoryRepo repositories.CategoryRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	standings    StandingsService
	uploader     storage.FileUploader
}

func NewReportService(
	categoryRepo repositories.CategoryRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	uploader storage.FileUploader,
) ReportService {
	return &reportService{
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		standings:    standings,
		uploader:     uploader,
	}
}

func (s *reportService) GenerateReport(ctx context.Context, categoryID int) (*CategoryReport, error) {
	if s.uploader == nil {
		return nil, ErrStorageNotConfigured
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	teams, err := s.teamRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for category %d: %w", categoryID, err)
	}
	finished := models.MatchStatusFinished
	matches, err := s.matchRepo.ListByCategory(ctx, categoryID, &finished)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for category %d: %w", categoryID, err)
	}
	table, err := s.standings.GetCategoryStandings(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	content, err := renderReportPDF(category, teamNameIndex(teams), table, matches)
	if err != nil {
		return nil, fmt.Errorf("failed to render report for category %d: %w", categoryID, err)
	}

	key := fmt.Sprintf("reports/category_%d_%d.pdf", category.ID, time.Now().Unix())
	result, err := s.uploader.Upload(ctx, key, "application/pdf", bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to upload report for category %d: %w", categoryID, err)
	}

	return &CategoryReport{Key: result.Key, URL: result.Location}, nil
}

func renderReportPDF(
	category *models.Category,
	teamNames map[int]string,
	table []models.Standing,
	matches []*models.Match,
) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Standings - %s", category.Name), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, category.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, time.Now().Format("2006-01-02"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Standings table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Standings", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{10, 60, 15, 15, 15, 18, 15, 18, 15}
	headers := []string{"Pos", "Team", "P", "W", "L", "Pts", "For", "Agst", "Diff"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range table {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			row.TeamName,
			fmt.Sprintf("%d", row.Played),
			fmt.Sprintf("%d", row.Wins),
			fmt.Sprintf("%d", row.Losses),
			fmt.Sprintf("%d", row.Points),
			fmt.Sprintf("%d", row.PointsFor),
			fmt.Sprintf("%d", row.PointsAgainst),
			fmt.Sprintf("%+d", row.PointsDifference),
		}
		for j, cell := range cells {
			align := "C"
			if j == 1 {
				align = "L"
			}
			pdf.CellFormat(widths[j], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	// Results
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Results", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, match := range matches {
		line := fmt.Sprintf("%s vs %s: %s %s %s",
			teamNames[match.Team1ID],
			teamNames[match.Team2ID],
			formatSet(match.Sets[0]),
			formatSet(match.Sets[1]),
			formatSet(match.Sets[2]),
		)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
