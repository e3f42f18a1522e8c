// internal/repository/postgres/category_pg.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"exptr-api/internal/domain"
	"exptr-api/internal/repository"
	"exptr-api/internal/util"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository implements repository.CategoryRepository for PostgreSQL.
type CategoryRepository struct {
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &CategoryRepository{}
}

// CreateCategory inserts a new category using the provided DBExecutor.
func (r *CategoryRepository) CreateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	query := `INSERT INTO categories (user_id, name, type, color, icon, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		category.UserID,
		category.Name,
		category.Type,
		category.Color,
		category.Icon,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", mapError(err))
	}
	return nil
}

// UpdateCategory overwrites all mutable fields of a category by id.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	query := `UPDATE categories SET user_id = $1, name = $2, type = $3, color = $4, icon = $5, updated_at = $6 WHERE id = $7`
	result, err := q.ExecContext(ctx, query,
		category.UserID,
		category.Name,
		category.Type,
		category.Color,
		category.Icon,
		category.UpdatedAt,
		category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, mapError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating category %d: %w", category.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update category %d: %w", category.ID, util.ErrNotFound)
	}
	return nil
}

// GetCategories returns the user's categories plus global ones (NULL owner),
// ordered by id for deterministic listings.
func (r *CategoryRepository) GetCategories(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Category, error) {
	categories := []domain.Category{}
	query := `SELECT id, user_id, name, type, color, icon, created_at, updated_at
              FROM categories
              WHERE user_id = $1 OR user_id IS NULL
              ORDER BY id`
	if err := q.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch categories for user %d: %w", userID, err)
	}
	return categories, nil
}

// DeleteCategory removes a category by id. The RESTRICT constraint on
// operations.category_id turns a delete of a still-referenced category into
// a foreign key violation, surfaced as util.ErrCategoryInUse.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, q repository.DBExecutor, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, util.ErrInvalidReference) {
			return fmt.Errorf("delete category %d: %w", id, util.ErrCategoryInUse)
		}
		return fmt.Errorf("failed to delete category %d: %w", id, mapped)
	}
	return nil
}
