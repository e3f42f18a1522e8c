// internal/repository/category_repo.go
package repository

import (
	"context"

	"exptr-api/internal/domain"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	// CreateCategory adds a new category and fills in its generated id.
	CreateCategory(ctx context.Context, q DBExecutor, category *domain.Category) error
	// UpdateCategory overwrites all mutable fields by id.
	UpdateCategory(ctx context.Context, q DBExecutor, category *domain.Category) error
	// GetCategories returns the user's categories plus global ones, ordered by id.
	GetCategories(ctx context.Context, q DBExecutor, userID int64) ([]domain.Category, error)
	// DeleteCategory removes a category by id. Absent ids are a no-op; a
	// category still referenced by operations surfaces util.ErrCategoryInUse.
	DeleteCategory(ctx context.Context, q DBExecutor, id int64) error
}
