package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/imartinez/fronton-league/league"
	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

type StandingsService interface {
	GetCategoryStandings(ctx context.Context, categoryID int) ([]models.Standing, error)
}

type standingsService struct {
	categoryRepo repositories.CategoryRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
}

func NewStandingsService(
	categoryRepo repositories.CategoryRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
	}
}

// GetCategoryStandings recomputes the table from scratch; matches are
// the source of truth, nothing is cached between calls.
func (s *standingsService) GetCategoryStandings(ctx context.Context, categoryID int) ([]models.Standing, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	teams, err := s.teamRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for category %d: %w", categoryID, err)
	}
	matches, err := s.matchRepo.ListByCategory(ctx, categoryID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for category %d: %w", categoryID, err)
	}

	teamValues := make([]models.Team, 0, len(teams))
	for _, team := range teams {
		teamValues = append(teamValues, *team)
	}
	matchValues := make([]models.Match, 0, len(matches))
	for _, match := range matches {
		matchValues = append(matchValues, *match)
	}

	return league.ComputeStandings(teamValues, matchValues), nil
}
