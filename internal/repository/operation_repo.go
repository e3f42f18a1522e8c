// internal/repository/operation_repo.go
package repository

import (
	"context"

	"exptr-api/internal/domain"
)

// OperationRepository defines the interface for operation data operations.
type OperationRepository interface {
	// CreateOperation adds a new operation and fills in its generated id.
	// A missing user or category surfaces util.ErrInvalidReference.
	CreateOperation(ctx context.Context, q DBExecutor, operation *domain.Operation) error
	// UpdateOperation overwrites all mutable fields by id.
	UpdateOperation(ctx context.Context, q DBExecutor, operation *domain.Operation) error
	// GetOperationByID retrieves an operation by id.
	GetOperationByID(ctx context.Context, q DBExecutor, id int64) (*domain.Operation, error)
	// GetOperationsByUserID returns the user's operations ordered by id.
	// An empty result is a valid, empty slice, not an error.
	GetOperationsByUserID(ctx context.Context, q DBExecutor, userID int64) ([]domain.Operation, error)
	// DeleteOperation removes an operation by id. Absent ids are a no-op.
	DeleteOperation(ctx context.Context, q DBExecutor, id int64) error
	// GetCategorySummary aggregates the user's operations per category and currency.
	GetCategorySummary(ctx context.Context, q DBExecutor, userID int64) ([]domain.CategoryTotal, error)
}
