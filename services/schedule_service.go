package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/imartinez/fronton-league/league"
	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

type ScheduleService interface {
	// GenerateSchedule replaces the category's fixtures with a fresh
	// round-robin calendar. Refused once any match has been played.
	GenerateSchedule(ctx context.Context, categoryID int) ([]models.Match, error)
	ListCategoryMatches(ctx context.Context, categoryID int) ([]*models.Match, error)
}

// TxBeginner is the slice of *sql.DB the service needs to run the
// delete-and-recreate in one transaction; tests substitute a fake.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type scheduleService struct {
	db           TxBeginner
	categoryRepo repositories.CategoryRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	hub          *league.Hub
}

func NewScheduleService(
	db TxBeginner,
	categoryRepo repositories.CategoryRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	hub *league.Hub,
) ScheduleService {
	return &scheduleService{
		db:           db,
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		hub:          hub,
	}
}

func (s *scheduleService) GenerateSchedule(ctx context.Context, categoryID int) ([]models.Match, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.Status == models.CategoryStatusCompleted {
		return nil, ErrCategoryCompleted
	}

	teams, err := s.teamRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for category %d: %w", categoryID, err)
	}
	if len(teams) < 2 {
		return nil, ErrScheduleNotEnoughTeams
	}

	_, finished, err := s.matchRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches for category %d: %w", categoryID, err)
	}
	if finished > 0 {
		return nil, ErrScheduleAlreadyPlayed
	}

	teamValues := make([]models.Team, 0, len(teams))
	for _, team := range teams {
		teamValues = append(teamValues, *team)
	}
	matches := league.GenerateMatches(teamValues, categoryID, category.TwoLegged)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.DeleteByCategory(ctx, tx, categoryID); err != nil {
		return nil, fmt.Errorf("failed to clear previous schedule for category %d: %w", categoryID, err)
	}
	if err := s.matchRepo.BatchCreate(ctx, tx, matches); err != nil {
		return nil, fmt.Errorf("failed to persist schedule for category %d: %w", categoryID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit schedule for category %d: %w", categoryID, err)
	}

	s.hub.BroadcastToRoom(league.CategoryRoom(categoryID), league.WebSocketMessage{
		Type:    league.MessageScheduleGenerated,
		Payload: matches,
		RoomID:  league.CategoryRoom(categoryID),
	})

	return matches, nil
}

func (s *scheduleService) ListCategoryMatches(ctx context.Context, categoryID int) ([]*models.Match, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	matches, err := s.matchRepo.ListByCategory(ctx, categoryID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for category %d: %w", categoryID, err)
	}
	return matches, nil
}
