package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

type CreateCategoryInput struct {
	Name      string `json:"name"`
	TwoLegged bool   `json:"two_legged"`
}

type UpdateCategoryInput struct {
	Name      *string `json:"name"`
	TwoLegged *bool   `json:"two_legged"`
}

type CategoryService interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id int, input UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	// AutoCompleteCategories marks active categories whose schedule is
	// fully played as completed. Run periodically from main.
	AutoCompleteCategories(ctx context.Context) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	logger       *slog.Logger
}

func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		logger:       logger,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	category := &models.Category{
		Name:      input.Name,
		TwoLegged: input.TwoLegged,
		Status:    models.CategoryStatusActive,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNameConflict) {
			return nil, ErrCategoryConflict
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	teams, err := s.teamRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for category %d: %w", id, err)
	}
	category.Teams = make([]models.Team, 0, len(teams))
	for _, team := range teams {
		category.Teams = append(category.Teams, *team)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, nil)
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		category.Name = name
	}
	if input.TwoLegged != nil {
		category.TwoLegged = *input.TwoLegged
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNameConflict) {
			return nil, ErrCategoryConflict
		}
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int) error {
	err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

func (s *categoryService) AutoCompleteCategories(ctx context.Context) error {
	active := models.CategoryStatusActive
	categories, err := s.categoryRepo.List(ctx, &active)
	if err != nil {
		return fmt.Errorf("failed to list active categories: %w", err)
	}

	for _, category := range categories {
		total, finished, err := s.matchRepo.CountByCategory(ctx, category.ID)
		if err != nil {
			return fmt.Errorf("failed to count matches for category %d: %w", category.ID, err)
		}
		if total == 0 || finished < total {
			continue
		}
		if err := s.categoryRepo.UpdateStatus(ctx, category.ID, models.CategoryStatusCompleted); err != nil {
			return fmt.Errorf("failed to complete category %d: %w", category.ID, err)
		}
		s.logger.Info("category completed",
			slog.Int("category_id", category.ID),
			slog.String("name", category.Name),
			slog.Int("matches", total),
		)
	}
	return nil
}
