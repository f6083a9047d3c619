package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/imartinez/fronton-league/models"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameConflict = errors.New("category name already exists")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int) (*models.Category, error)
	List(ctx context.Context, status *models.CategoryStatus) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	UpdateStatus(ctx context.Context, id int, status models.CategoryStatus) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context, status *models.CategoryStatus) (int, error)
}

type postgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

func (r *postgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, two_legged, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		category.Name,
		category.TwoLegged,
		category.Status,
	).Scan(&category.ID, &category.CreatedAt)

	return handleCategoryError(err)
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	query := `
		SELECT id, name, two_legged, status, created_at
		FROM categories
		WHERE id = $1`

	category := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.TwoLegged,
		&category.Status,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *postgresCategoryRepository) List(ctx context.Context, status *models.CategoryStatus) ([]*models.Category, error) {
	query := `
		SELECT id, name, two_legged, status, created_at
		FROM categories`
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		var category models.Category
		if scanErr := rows.Scan(
			&category.ID,
			&category.Name,
			&category.TwoLegged,
			&category.Status,
			&category.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

func (r *postgresCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, two_legged = $2, status = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		category.Name,
		category.TwoLegged,
		category.Status,
		category.ID,
	)
	if err != nil {
		return handleCategoryError(err)
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *postgresCategoryRepository) UpdateStatus(ctx context.Context, id int, status models.CategoryStatus) error {
	query := `UPDATE categories SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *postgresCategoryRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *postgresCategoryRepository) Count(ctx context.Context, status *models.CategoryStatus) (int, error) {
	query := `SELECT COUNT(*) FROM categories`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func handleCategoryError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
		return ErrCategoryNameConflict
	}
	return err
}
