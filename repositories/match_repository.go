package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/imartinez/fronton-league/models"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchCategoryInvalid = errors.New("match category conflict or invalid")
	ErrMatchTeamInvalid     = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	BatchCreate(ctx context.Context, exec SQLExecutor, matches []models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByCategory(ctx context.Context, categoryID int, status *models.MatchStatus) ([]*models.Match, error)
	ListRecentFinished(ctx context.Context, limit int) ([]*models.Match, error)
	UpdateResult(ctx context.Context, match *models.Match) error
	DeleteByCategory(ctx context.Context, exec SQLExecutor, categoryID int) error
	Count(ctx context.Context, status *models.MatchStatus) (int, error)
	CountByCategory(ctx context.Context, categoryID int) (total int, finished int, err error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, category_id, team1_id, team2_id,
	set1_team1, set1_team2, set2_team1, set2_team2, set3_team1, set3_team2,
	winner_id, status, date, created_at`

func (r *postgresMatchRepository) BatchCreate(ctx context.Context, exec SQLExecutor, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	query := `
		INSERT INTO matches
			(id, category_id, team1_id, team2_id,
			 set1_team1, set1_team2, set2_team1, set2_team2, set3_team1, set3_team2,
			 winner_id, status, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	executor := r.getExecutor(exec)
	for i := range matches {
		m := &matches[i]
		_, err := executor.ExecContext(ctx, query,
			m.ID, m.CategoryID, m.Team1ID, m.Team2ID,
			m.Sets[0].Team1Score, m.Sets[0].Team2Score,
			m.Sets[1].Team1Score, m.Sets[1].Team2Score,
			m.Sets[2].Team1Score, m.Sets[2].Team2Score,
			m.WinnerID, m.Status, m.Date,
		)
		if err != nil {
			return r.handleMatchError(err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByCategory(ctx context.Context, categoryID int, status *models.MatchStatus) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE category_id = $1`
	args := []interface{}{categoryID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	return r.queryMatches(ctx, query, args...)
}

func (r *postgresMatchRepository) ListRecentFinished(ctx context.Context, limit int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`

	return r.queryMatches(ctx, query, models.MatchStatusFinished, limit)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET set1_team1 = $1, set1_team2 = $2,
		    set2_team1 = $3, set2_team2 = $4,
		    set3_team1 = $5, set3_team2 = $6,
		    winner_id = $7, status = $8, date = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		match.Sets[0].Team1Score, match.Sets[0].Team2Score,
		match.Sets[1].Team1Score, match.Sets[1].Team2Score,
		match.Sets[2].Team1Score, match.Sets[2].Team2Score,
		match.WinnerID, match.Status, match.Date,
		match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) DeleteByCategory(ctx context.Context, exec SQLExecutor, categoryID int) error {
	query := `DELETE FROM matches WHERE category_id = $1`

	_, err := r.getExecutor(exec).ExecContext(ctx, query, categoryID)
	return err
}

func (r *postgresMatchRepository) Count(ctx context.Context, status *models.MatchStatus) (int, error) {
	query := `SELECT COUNT(*) FROM matches`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) CountByCategory(ctx context.Context, categoryID int) (int, int, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $2)
		FROM matches
		WHERE category_id = $1`

	var total, finished int
	err := r.db.QueryRowContext(ctx, query, categoryID, models.MatchStatusFinished).Scan(&total, &finished)
	return total, finished, err
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID, &match.CategoryID, &match.Team1ID, &match.Team2ID,
		&match.Sets[0].Team1Score, &match.Sets[0].Team2Score,
		&match.Sets[1].Team1Score, &match.Sets[1].Team2Score,
		&match.Sets[2].Team1Score, &match.Sets[2].Team2Score,
		&match.WinnerID, &match.Status, &match.Date, &match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
		switch pqErr.Constraint {
		case "matches_category_id_fkey":
			return ErrMatchCategoryInvalid
		case "matches_team1_id_fkey", "matches_team2_id_fkey", "matches_winner_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
