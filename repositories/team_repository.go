package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/imartinez/fronton-league/models"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamNameConflict    = errors.New("team name already exists in category")
	ErrTeamCategoryInvalid = errors.New("team category conflict or invalid")
	ErrTeamPlayerInvalid   = errors.New("team player conflict or invalid")
	ErrTeamPlayerConflict  = errors.New("player already on the team")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByCategory(ctx context.Context, categoryID int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)

	AddPlayer(ctx context.Context, exec SQLExecutor, teamID, playerID int) error
	RemovePlayer(ctx context.Context, teamID, playerID int) error
	ListPlayers(ctx context.Context, teamID int) ([]models.Player, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `
		INSERT INTO teams (category_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		team.CategoryID,
		team.Name,
	).Scan(&team.ID, &team.CreatedAt)

	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, category_id, name, created_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.CategoryID,
		&team.Name,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) ListByCategory(ctx context.Context, categoryID int) ([]*models.Team, error) {
	query := `
		SELECT id, category_id, name, created_at
		FROM teams
		WHERE category_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(&team.ID, &team.CategoryID, &team.Name, &team.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET name = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, team.Name, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) AddPlayer(ctx context.Context, exec SQLExecutor, teamID, playerID int) error {
	query := `INSERT INTO team_players (team_id, player_id) VALUES ($1, $2)`

	_, err := r.getExecutor(exec).ExecContext(ctx, query, teamID, playerID)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) RemovePlayer(ctx context.Context, teamID, playerID int) error {
	query := `DELETE FROM team_players WHERE team_id = $1 AND player_id = $2`

	result, err := r.db.ExecContext(ctx, query, teamID, playerID)
	if err != nil {
		return err
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresTeamRepository) ListPlayers(ctx context.Context, teamID int) ([]models.Player, error) {
	query := `
		SELECT p.id, p.name, p.created_at
		FROM players p
		JOIN team_players tp ON tp.player_id = p.id
		WHERE tp.team_id = $1
		ORDER BY p.name ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(&player.ID, &player.Name, &player.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "team_players_pkey" {
				return ErrTeamPlayerConflict
			}
			return ErrTeamNameConflict
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "teams_category_id_fkey":
				return ErrTeamCategoryInvalid
			case "team_players_player_id_fkey", "team_players_team_id_fkey":
				return ErrTeamPlayerInvalid
			}
		}
	}
	return err
}
