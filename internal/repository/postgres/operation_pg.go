// internal/repository/postgres/operation_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"exptr-api/internal/domain"
	"exptr-api/internal/repository"
	"exptr-api/internal/util"

	"github.com/jmoiron/sqlx"
)

// OperationRepository implements repository.OperationRepository for PostgreSQL.
type OperationRepository struct {
}

// NewOperationRepository creates a new OperationRepository.
func NewOperationRepository(db *sqlx.DB) repository.OperationRepository {
	return &OperationRepository{}
}

// CreateOperation inserts a new operation using the provided DBExecutor.
// Referential integrity is enforced by the user_id and category_id foreign
// keys; a violation comes back as util.ErrInvalidReference.
func (r *OperationRepository) CreateOperation(ctx context.Context, q repository.DBExecutor, operation *domain.Operation) error {
	query := `INSERT INTO operations (user_id, category_id, amount, currency, name, comment, type, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		operation.UserID,
		operation.CategoryID,
		operation.Amount,
		operation.Currency,
		operation.Name,
		operation.Comment,
		operation.Type,
		operation.CreatedAt,
		operation.UpdatedAt,
	).Scan(&operation.ID)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", mapError(err))
	}
	return nil
}

// UpdateOperation overwrites all mutable fields of an operation by id.
func (r *OperationRepository) UpdateOperation(ctx context.Context, q repository.DBExecutor, operation *domain.Operation) error {
	query := `UPDATE operations SET user_id = $1, category_id = $2, amount = $3, currency = $4, name = $5, comment = $6, type = $7, updated_at = $8 WHERE id = $9`
	result, err := q.ExecContext(ctx, query,
		operation.UserID,
		operation.CategoryID,
		operation.Amount,
		operation.Currency,
		operation.Name,
		operation.Comment,
		operation.Type,
		operation.UpdatedAt,
		operation.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update operation %d: %w", operation.ID, mapError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating operation %d: %w", operation.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update operation %d: %w", operation.ID, util.ErrNotFound)
	}
	return nil
}

// GetOperationByID retrieves an operation by id using the provided DBExecutor.
func (r *OperationRepository) GetOperationByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Operation, error) {
	var operation domain.Operation
	query := `SELECT id, user_id, category_id, amount, currency, name, comment, type, created_at, updated_at
              FROM operations WHERE id = $1`
	err := q.GetContext(ctx, &operation, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get operation by ID %d: %w", id, err)
	}
	return &operation, nil
}

// GetOperationsByUserID returns the user's operations ordered by id.
func (r *OperationRepository) GetOperationsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Operation, error) {
	operations := []domain.Operation{}
	query := `SELECT id, user_id, category_id, amount, currency, name, comment, type, created_at, updated_at
              FROM operations
              WHERE user_id = $1
              ORDER BY id`
	if err := q.SelectContext(ctx, &operations, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch operations for user %d: %w", userID, err)
	}
	return operations, nil
}

// DeleteOperation removes an operation by id. Idempotent.
func (r *OperationRepository) DeleteOperation(ctx context.Context, q repository.DBExecutor, id int64) error {
	query := `DELETE FROM operations WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete operation %d: %w", id, err)
	}
	return nil
}

// GetCategorySummary aggregates operation amounts per category and currency.
func (r *OperationRepository) GetCategorySummary(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.CategoryTotal, error) {
	totals := []domain.CategoryTotal{}
	query := `SELECT o.category_id, c.name AS category_name, o.type, o.currency,
                     SUM(o.amount) AS total_minor, COUNT(*) AS count
              FROM operations o
              JOIN categories c ON c.id = o.category_id
              WHERE o.user_id = $1
              GROUP BY o.category_id, c.name, o.type, o.currency
              ORDER BY o.category_id`
	if err := q.SelectContext(ctx, &totals, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch category summary for user %d: %w", userID, err)
	}
	return totals, nil
}
