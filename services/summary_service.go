package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

const summarySystemPrompt = "You are a sports journalist covering an amateur fronton " +
	"(paddle-ball) league. Write a short, readable prose summary of the category " +
	"standings and recent results you are given. Two or three paragraphs, no lists, " +
	"no markdown."

type CategorySummary struct {
	CategoryID int    `json:"category_id"`
	Text       string `json:"text"`
}

// SummaryClient is the slice of the OpenAI client the service needs;
// tests substitute a fake.
type SummaryClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type SummaryService interface {
	// GenerateSummary produces an AI-written prose recap of a
	// category's table and latest results.
	GenerateSummary(ctx context.Context, categoryID int) (*CategorySummary, error)
}

type summaryService struct {
	categoryRepo repositories.CategoryRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	standings    StandingsService
	client       SummaryClient
	model        string
}

func NewSummaryService(
	categoryRepo repositories.CategoryRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	client SummaryClient,
	model string,
) SummaryService {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &summaryService{
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		standings:    standings,
		client:       client,
		model:        model,
	}
}

func (s *summaryService) GenerateSummary(ctx context.Context, categoryID int) (*CategorySummary, error) {
	if s.client == nil {
		return nil, ErrSummaryNotConfigured
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

	prompt := buildSummaryPrompt(category, teamNameIndex(teams), table, matches)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("summary request failed for category %d: %w", categoryID, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("summary request for category %d returned no choices", categoryID)
	}

	return &CategorySummary{
		CategoryID: categoryID,
		Text:       strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}

func buildSummaryPrompt(
	category *models.Category,
	teamNames map[int]string,
	table []models.Standing,
	matches []*models.Match,
) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Category: %s\n\nStandings (points, wins-losses, point diff):\n", category.Name)
	for i, row := range table {
		fmt.Fprintf(&sb, "%d. %s - %d pts, %d-%d, %+d\n",
			i+1, row.TeamName, row.Points, row.Wins, row.Losses, row.PointsDifference)
	}

	sb.WriteString("\nResults:\n")
	for _, match := range matches {
		fmt.Fprintf(&sb, "%s vs %s: %s %s %s\n",
			teamNames[match.Team1ID],
			teamNames[match.Team2ID],
			formatSet(match.Sets[0]),
			formatSet(match.Sets[1]),
			formatSet(match.Sets[2]),
		)
	}
	return sb.String()
}
