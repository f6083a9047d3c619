package services

import (
	"context"
	"fmt"

	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

const dashboardRecentResults = 10

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	playerRepo   repositories.PlayerRepository
	teamRepo     repositories.TeamRepository
	categoryRepo repositories.CategoryRepository
	matchRepo    repositories.MatchRepository
}

func NewDashboardService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	categoryRepo repositories.CategoryRepository,
	matchRepo repositories.MatchRepository,
) DashboardService {
	return &dashboardService{
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		categoryRepo: categoryRepo,
		matchRepo:    matchRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	playersTotal, err := s.playerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}
	teamsTotal, err := s.teamRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count teams: %w", err)
	}
	categoriesTotal, err := s.categoryRepo.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	active := models.CategoryStatusActive
	activeCategories, err := s.categoryRepo.Count(ctx, &active)
	if err != nil {
		return nil, fmt.Errorf("failed to count active categories: %w", err)
	}
	matchesTotal, err := s.matchRepo.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	finished := models.MatchStatusFinished
	matchesFinished, err := s.matchRepo.Count(ctx, &finished)
	if err != nil {
		return nil, fmt.Errorf("failed to count finished matches: %w", err)
	}

	recent, err := s.matchRepo.ListRecentFinished(ctx, dashboardRecentResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}
	recentResults := make([]models.Match, 0, len(recent))
	for _, match := range recent {
		recentResults = append(recentResults, *match)
	}

	return &models.DashboardStats{
		PlayersTotal:     playersTotal,
		TeamsTotal:       teamsTotal,
		CategoriesTotal:  categoriesTotal,
		ActiveCategories: activeCategories,
		MatchesTotal:     matchesTotal,
		MatchesFinished:  matchesFinished,
		RecentResults:    recentResults,
	}, nil
}
