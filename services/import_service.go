package services

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

// maxImportSize caps spreadsheet uploads at 10MB.
const maxImportSize = 10 << 20

var ErrImportUnsupportedFile = errors.New("unsupported import file type, expected .csv or .xlsx")

type ImportResult struct {
	TeamsCreated   int `json:"teams_created"`
	PlayersCreated int `json:"players_created"`
	RowsSkipped    int `json:"rows_skipped"`
}

// importRow is one parsed spreadsheet row: a team and its players.
type importRow struct {
	TeamName string
	Players  []string
}

type ImportService interface {
	// ImportTeams loads a CSV/XLSX roster sheet into a category. Each
	// row holds a team name plus player name columns; players are
	// created on first sight and reused by exact name afterwards.
	ImportTeams(ctx context.Context, categoryID int, file *multipart.FileHeader) (*ImportResult, error)
}

type importService struct {
	db           *sql.DB
	categoryRepo repositories.CategoryRepository
	teamRepo     repositories.TeamRepository
	playerRepo   repositories.PlayerRepository
}

func NewImportService(
	db *sql.DB,
	categoryRepo repositories.CategoryRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
) ImportService {
	return &importService{
		db:           db,
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
	}
}

func (s *importService) ImportTeams(ctx context.Context, categoryID int, fileHeader *multipart.FileHeader) (*ImportResult, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	rows, err := parseImportFile(fileHeader)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result := &ImportResult{}
	for _, row := range rows {
		if row.TeamName == "" {
			result.RowsSkipped++
			continue
		}

		team := &models.Team{CategoryID: categoryID, Name: row.TeamName}
		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			if errors.Is(err, repositories.ErrTeamNameConflict) {
				result.RowsSkipped++
				continue
			}
			return nil, fmt.Errorf("failed to create team %q: %w", row.TeamName, err)
		}
		result.TeamsCreated++

		for _, playerName := range row.Players {
			player, err := s.playerRepo.GetByName(ctx, tx, playerName)
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				player = &models.Player{Name: playerName}
				if err := s.playerRepo.Create(ctx, tx, player); err != nil {
					return nil, fmt.Errorf("failed to create player %q: %w", playerName, err)
				}
				result.PlayersCreated++
			} else if err != nil {
				return nil, fmt.Errorf("failed to look up player %q: %w", playerName, err)
			}

			if err := s.teamRepo.AddPlayer(ctx, tx, team.ID, player.ID); err != nil {
				if errors.Is(err, repositories.ErrTeamPlayerConflict) {
					continue
				}
				return nil, fmt.Errorf("failed to add player %q to team %q: %w", playerName, row.TeamName, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}
	return result, nil
}

func parseImportFile(fileHeader *multipart.FileHeader) ([]importRow, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch ext {
	case ".csv":
		return parseCSVRows(io.LimitReader(file, maxImportSize))
	case ".xlsx":
		data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			return nil, err
		}
		return parseXLSXRows(data)
	default:
		return nil, ErrImportUnsupportedFile
	}
}

func parseCSVRows(r io.Reader) ([]importRow, error) {
	br := bufio.NewReader(r)
	// Peek the first line to sniff the delimiter, then put it back.
	line, _ := br.ReadString('\n')
	rest := io.MultiReader(strings.NewReader(line), br)

	reader := csv.NewReader(rest)
	reader.FieldsPerRecord = -1
	if strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return recordsToRows(records), nil
}

func parseXLSXRows(data []byte) ([]importRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx file has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}
	return recordsToRows(records), nil
}

// recordsToRows maps raw cells to import rows: first column is the
// team name, the rest are player names. A header row ("team", ...) is
// detected and dropped.
func recordsToRows(records [][]string) []importRow {
	rows := make([]importRow, 0, len(records))
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		teamName := strings.TrimSpace(record[0])
		if teamName == "" {
			continue
		}
		if i == 0 && strings.EqualFold(teamName, "team") {
			continue
		}

		row := importRow{TeamName: teamName}
		for _, cell := range record[1:] {
			if name := strings.TrimSpace(cell); name != "" {
				row.Players = append(row.Players, name)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
