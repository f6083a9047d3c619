package services

import (
	"context"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

type fakeCategoryRepo struct {
	categories map[int]*models.Category
}

func newFakeCategoryRepo(categories ...*models.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[int]*models.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	category.ID = len(r.categories) + 1
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCategoryRepo) List(_ context.Context, status *models.CategoryStatus) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range r.categories {
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *models.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repositories.ErrCategoryNotFound
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) UpdateStatus(_ context.Context, id int, status models.CategoryStatus) error {
	c, ok := r.categories[id]
	if !ok {
		return repositories.ErrCategoryNotFound
	}
	c.Status = status
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.categories[id]; !ok {
		return repositories.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) Count(_ context.Context, status *models.CategoryStatus) (int, error) {
	list, _ := r.List(context.Background(), status)
	return len(list), nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, team := range teams {
		repo.teams[team.ID] = team
	}
	return repo
}

func (r *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	team.ID = len(r.teams) + 1
	clone := *team
	r.teams[team.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	clone := *team
	return &clone, nil
}

func (r *fakeTeamRepo) ListByCategory(_ context.Context, categoryID int) ([]*models.Team, error) {
	var out []*models.Team
	for _, team := range r.teams {
		if team.CategoryID == categoryID {
			out = append(out, team)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	clone := *team
	r.teams[team.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) Count(_ context.Context) (int, error) {
	return len(r.teams), nil
}

func (r *fakeTeamRepo) AddPlayer(context.Context, repositories.SQLExecutor, int, int) error {
	return nil
}

func (r *fakeTeamRepo) RemovePlayer(context.Context, int, int) error { return nil }

func (r *fakeTeamRepo) ListPlayers(context.Context, int) ([]models.Player, error) {
	return nil, nil
}

type fakeSummaryClient struct {
	lastRequest openai.ChatCompletionRequest
	reply       string
}

func (c *fakeSummaryClient) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.lastRequest = request
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: c.reply}},
		},
	}, nil
}

func TestGenerateSummary(t *testing.T) {
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
	client := &fakeSummaryClient{reply: "  Los Vetustas lead Primera.  "}
	svc := NewSummaryService(categoryRepo, teamRepo, matchRepo, standings, client, "")

	summary, err := svc.GenerateSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CategoryID)
	assert.Equal(t, "Los Vetustas lead Primera.", summary.Text)

	assert.Equal(t, openai.GPT4oMini, client.lastRequest.Model)
	require.Len(t, client.lastRequest.Messages, 2)
	prompt := client.lastRequest.Messages[1].Content
	assert.True(t, strings.Contains(prompt, "Primera"))
	assert.True(t, strings.Contains(prompt, "Los Vetustas"))
	assert.True(t, strings.Contains(prompt, "18-10"))
}

func TestGenerateSummaryNotConfigured(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(&models.Category{ID: 1, Name: "Primera"})
	teamRepo := newFakeTeamRepo()
	matchRepo := newFakeMatchRepo()
	standings := NewStandingsService(categoryRepo, teamRepo, matchRepo)

	svc := NewSummaryService(categoryRepo, teamRepo, matchRepo, standings, nil, "")
	_, err := svc.GenerateSummary(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSummaryNotConfigured)
}

func TestGenerateSummaryUnknownCategory(t *testing.T) {
	categoryRepo := newFakeCategoryRepo()
	teamRepo := newFakeTeamRepo()
	matchRepo := newFakeMatchRepo()
	standings := NewStandingsService(categoryRepo, teamRepo, matchRepo)

	svc := NewSummaryService(categoryRepo, teamRepo, matchRepo, standings, &fakeSummaryClient{}, "")
	_, err := svc.GenerateSummary(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
