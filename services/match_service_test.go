package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imartinez/fronton-league/league"
	"github.com/imartinez/fronton-league/models"
	"github.com/imartinez/fronton-league/repositories"
)

type fakeMatchRepo struct {
	matches map[string]*models.Match
	updated *models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{matches: make(map[string]*models.Match)}
	for _, m := range matches {
		repo.matches[m.ID] = m
	}
	return repo
}

func (r *fakeMatchRepo) BatchCreate(_ context.Context, _ repositories.SQLExecutor, matches []models.Match) error {
	for i := range matches {
		m := matches[i]
		r.matches[m.ID] = &m
	}
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMatchRepo) ListByCategory(_ context.Context, categoryID int, status *models.MatchStatus) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range r.matches {
		if m.CategoryID != categoryID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) ListRecentFinished(_ context.Context, _ int) ([]*models.Match, error) {
	return nil, nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, match *models.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	clone := *match
	r.matches[match.ID] = &clone
	r.updated = &clone
	return nil
}

func (r *fakeMatchRepo) DeleteByCategory(_ context.Context, _ repositories.SQLExecutor, categoryID int) error {
	for id, m := range r.matches {
		if m.CategoryID == categoryID {
			delete(r.matches, id)
		}
	}
	return nil
}

func (r *fakeMatchRepo) Count(_ context.Context, _ *models.MatchStatus) (int, error) {
	return len(r.matches), nil
}

func (r *fakeMatchRepo) CountByCategory(_ context.Context, categoryID int) (int, int, error) {
	total, finished := 0, 0
	for _, m := range r.matches {
		if m.CategoryID != categoryID {
			continue
		}
		total++
		if m.Status == models.MatchStatusFinished {
			finished++
		}
	}
	return total, finished, nil
}

type fakeStandings struct{}

func (fakeStandings) GetCategoryStandings(context.Context, int) ([]models.Standing, error) {
	return []models.Standing{}, nil
}

func newTestMatchService(repo repositories.MatchRepository) MatchService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMatchService(repo, fakeStandings{}, league.NewHub(), logger)
}

func pendingMatch(id string, team1, team2 int) *models.Match {
	return &models.Match{
		ID:         id,
		CategoryID: 1,
		Team1ID:    team1,
		Team2ID:    team2,
		Status:     models.MatchStatusPending,
	}
}

func resultInput(scores ...[2]int) RecordResultInput {
	var input RecordResultInput
	for i, s := range scores {
		input.Sets[i] = models.MatchSet{Team1Score: intPtr(s[0]), Team2Score: intPtr(s[1])}
	}
	return input
}

func intPtr(v int) *int { return &v }

func TestRecordResultStraightSets(t *testing.T) {
	repo := newFakeMatchRepo(pendingMatch("m1", 10, 20))
	svc := newTestMatchService(repo)

	match, err := svc.RecordResult(context.Background(), "m1", resultInput([2]int{18, 10}, [2]int{18, 12}))
	require.NoError(t, err)

	require.NotNil(t, match.WinnerID)
	assert.Equal(t, 10, *match.WinnerID)
	assert.Equal(t, models.MatchStatusFinished, match.Status)
	require.NotNil(t, repo.updated)
	assert.Equal(t, models.MatchStatusFinished, repo.updated.Status)
}

func TestRecordResultTiebreaker(t *testing.T) {
	repo := newFakeMatchRepo(pendingMatch("m1", 10, 20))
	svc := newTestMatchService(repo)

	match, err := svc.RecordResult(context.Background(), "m1",
		resultInput([2]int{10, 18}, [2]int{18, 10}, [2]int{5, 11}))
	require.NoError(t, err)

	require.NotNil(t, match.WinnerID)
	assert.Equal(t, 20, *match.WinnerID)
	assert.Equal(t, models.MatchStatusFinished, match.Status)
}

func TestRecordResultPartialStaysPending(t *testing.T) {
	repo := newFakeMatchRepo(pendingMatch("m1", 10, 20))
	svc := newTestMatchService(repo)

	match, err := svc.RecordResult(context.Background(), "m1", resultInput([2]int{18, 10}))
	require.NoError(t, err)

	assert.Nil(t, match.WinnerID)
	assert.Equal(t, models.MatchStatusPending, match.Status)
}

func TestRecordResultClearsPreviousWinner(t *testing.T) {
	m := pendingMatch("m1", 10, 20)
	m.WinnerID = intPtr(10)
	m.Status = models.MatchStatusFinished
	repo := newFakeMatchRepo(m)
	svc := newTestMatchService(repo)

	// Correcting the result down to a single set reopens the match.
	match, err := svc.RecordResult(context.Background(), "m1", resultInput([2]int{18, 10}))
	require.NoError(t, err)

	assert.Nil(t, match.WinnerID)
	assert.Equal(t, models.MatchStatusPending, match.Status)
}

func TestRecordResultValidation(t *testing.T) {
	repo := newFakeMatchRepo(pendingMatch("m1", 10, 20))
	svc := newTestMatchService(repo)
	ctx := context.Background()

	var halfSet RecordResultInput
	halfSet.Sets[0] = models.MatchSet{Team1Score: intPtr(18)}
	_, err := svc.RecordResult(ctx, "m1", halfSet)
	assert.ErrorIs(t, err, ErrMatchScoreInvalid)

	_, err = svc.RecordResult(ctx, "m1", resultInput([2]int{-1, 10}))
	assert.ErrorIs(t, err, ErrMatchScoreInvalid)

	var gap RecordResultInput
	gap.Sets[1] = models.MatchSet{Team1Score: intPtr(18), Team2Score: intPtr(10)}
	_, err = svc.RecordResult(ctx, "m1", gap)
	assert.ErrorIs(t, err, ErrMatchSetOrderBroken)

	assert.Nil(t, repo.updated, "invalid input must not touch the repository")
}

func TestRecordResultUnknownMatch(t *testing.T) {
	svc := newTestMatchService(newFakeMatchRepo())

	_, err := svc.RecordResult(context.Background(), "missing", resultInput([2]int{18, 10}))
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRecordResultSetsDate(t *testing.T) {
	repo := newFakeMatchRepo(pendingMatch("m1", 10, 20))
	svc := newTestMatchService(repo)

	date := "2026-03-14"
	input := resultInput([2]int{18, 10}, [2]int{18, 5})
	input.Date = &date

	match, err := svc.RecordResult(context.Background(), "m1", input)
	require.NoError(t, err)
	require.NotNil(t, match.Date)
	assert.Equal(t, date, *match.Date)
}
