// internal/service/category_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"exptr-api/internal/domain"
	"exptr-api/internal/repository"
)

// CategoryService defines category business logic. It is a thin pass-through
// today; rules like per-user category quotas would attach here.
type CategoryService interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryService struct {
	dbExecutor   repository.DBExecutor
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(dbExecutor repository.DBExecutor, categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{
		dbExecutor:   dbExecutor,
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := s.categoryRepo.CreateCategory(ctx, s.dbExecutor, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	category.UpdatedAt = time.Now().UTC()
	if err := s.categoryRepo.UpdateCategory(ctx, s.dbExecutor, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	categories, err := s.categoryRepo.GetCategories(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.DeleteCategory(ctx, s.dbExecutor, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
