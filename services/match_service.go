package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/imartinez/fronton-league/league"
	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

// RecordResultInput carries the set scores entered for a match. Sets
// may be partially filled; the match only finishes once a side has won
// two sets.
type RecordResultInput struct {
	Sets [models.SetsPerMatch]models.MatchSet `json:"sets"`
	Date *string                              `json:"date,omitempty"`
}

type MatchService interface {
	GetMatchByID(ctx context.Context, id string) (*models.Match, error)
	RecordResult(ctx context.Context, id string, input RecordResultInput) (*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	standings StandingsService
	hub       *league.Hub
	logger    *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	hub *league.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		standings: standings,
		hub:       hub,
		logger:    logger,
	}
}

func (s *matchService) GetMatchByID(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) RecordResult(ctx context.Context, id string, input RecordResultInput) (*models.Match, error) {
	if err := validateSets(input.Sets); err != nil {
		return nil, err
	}

	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	match.Sets = input.Sets
	if input.Date != nil {
		match.Date = input.Date
	}

	// A winner exists once a side has taken two sets; anything less
	// leaves the match pending with whatever scores are recorded.
	wins1, wins2 := match.SetWins()
	switch {
	case wins1 >= 2:
		match.WinnerID = &match.Team1ID
		match.Status = models.MatchStatusFinished
	case wins2 >= 2:
		match.WinnerID = &match.Team2ID
		match.Status = models.MatchStatusFinished
	default:
		match.WinnerID = nil
		match.Status = models.MatchStatusPending
	}

	if err := s.matchRepo.UpdateResult(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %s: %w", id, err)
	}

	s.broadcastStandings(ctx, match)
	return match, nil
}

func (s *matchService) broadcastStandings(ctx context.Context, match *models.Match) {
	room := league.CategoryRoom(match.CategoryID)

	s.hub.BroadcastToRoom(room, league.WebSocketMessage{
		Type:    league.MessageMatchUpdated,
		Payload: match,
		RoomID:  room,
	})

	table, err := s.standings.GetCategoryStandings(ctx, match.CategoryID)
	if err != nil {
		s.logger.Error("failed to recompute standings for broadcast",
			slog.Int("category_id", match.CategoryID),
			slog.Any("error", err),
		)
		return
	}
	s.hub.BroadcastToRoom(room, league.WebSocketMessage{
		Type:    league.MessageStandingsUpdated,
		Payload: table,
		RoomID:  room,
	})
}

func validateSets(sets [models.SetsPerMatch]models.MatchSet) error {
	for i, set := range sets {
		if (set.Team1Score == nil) != (set.Team2Score == nil) {
			return fmt.Errorf("%w: set %d has only one score", ErrMatchScoreInvalid, i+1)
		}
		if set.Team1Score != nil && (*set.Team1Score < 0 || *set.Team2Score < 0) {
			return fmt.Errorf("%w: set %d has a negative score", ErrMatchScoreInvalid, i+1)
		}
		if set.Played() && i > 0 && !sets[i-1].Played() {
			return fmt.Errorf("%w: set %d recorded before set %d", ErrMatchSetOrderBroken, i+1, i)
		}
	}
	return nil
}
