package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

type CreateTeamInput struct {
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`
	PlayerIDs  []int  `json:"player_ids,omitempty"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeamsByCategory(ctx context.Context, categoryID int) ([]*models.Team, error)
	RenameTeam(ctx context.Context, id int, name string) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	AddPlayer(ctx context.Context, teamID, playerID int) error
	RemovePlayer(ctx context.Context, teamID, playerID int) error
}

type teamService struct {
	teamRepo     repositories.TeamRepository
	playerRepo   repositories.PlayerRepository
	categoryRepo repositories.CategoryRepository
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	categoryRepo repositories.CategoryRepository,
) TeamService {
	return &teamService{
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	team := &models.Team{CategoryID: input.CategoryID, Name: input.Name}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		return nil, s.mapTeamError(err)
	}

	for _, playerID := range input.PlayerIDs {
		if err := s.teamRepo.AddPlayer(ctx, nil, team.ID, playerID); err != nil {
			return nil, s.mapTeamError(err)
		}
	}

	return s.loadPlayers(ctx, team)
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}
	return s.loadPlayers(ctx, team)
}

func (s *teamService) ListTeamsByCategory(ctx context.Context, categoryID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for category %d: %w", categoryID, err)
	}
	for _, team := range teams {
		if _, err := s.loadPlayers(ctx, team); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (s *teamService) RenameTeam(ctx context.Context, id int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}

	team.Name = name
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, s.mapTeamError(err)
	}
	return s.loadPlayers(ctx, team)
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return s.mapTeamError(err)
	}
	return nil
}

func (s *teamService) AddPlayer(ctx context.Context, teamID, playerID int) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return s.mapTeamError(err)
	}
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return s.mapTeamError(s.teamRepo.AddPlayer(ctx, nil, teamID, playerID))
}

func (s *teamService) RemovePlayer(ctx context.Context, teamID, playerID int) error {
	err := s.teamRepo.RemovePlayer(ctx, teamID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to remove player %d from team %d: %w", playerID, teamID, err)
	}
	return nil
}

func (s *teamService) loadPlayers(ctx context.Context, team *models.Team) (*models.Team, error) {
	players, err := s.teamRepo.ListPlayers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for team %d: %w", team.ID, err)
	}
	team.Players = players
	return team, nil
}

func (s *teamService) mapTeamError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamPlayerConflict):
		return ErrTeamPlayerConflict
	case errors.Is(err, repositories.ErrTeamCategoryInvalid):
		return ErrCategoryNotFound
	case errors.Is(err, repositories.ErrTeamPlayerInvalid):
		return ErrPlayerNotFound
	default:
		return err
	}
}
