// internal/service/category_service_test.go
package service

import (
	"context"
	"testing"

	"exptr-api/internal/domain"
	"exptr-api/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	executor := new(MockDBExecutor)

	userID := int64(1)
	repo.On("CreateCategory", ctx, executor, mock.AnythingOfType("*domain.Category")).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.Category).ID = 5
	}).Return(nil)

	svc := NewCategoryService(executor, repo)
	created, err := svc.CreateCategory(ctx, domain.NewCategory(&userID, "Food", domain.CategoryTypeExpense, "#fff", "cart"))

	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, "Food", created.Name)
	repo.AssertExpectations(t)
}

func TestGetCategories(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	executor := new(MockDBExecutor)

	t.Run("empty result is a valid empty slice", func(t *testing.T) {
		repo.On("GetCategories", ctx, executor, int64(1)).Return([]domain.Category{}, nil).Once()

		svc := NewCategoryService(executor, repo)
		categories, err := svc.GetCategories(ctx, 1)

		require.NoError(t, err)
		assert.Empty(t, categories)
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	executor := new(MockDBExecutor)

	repo.On("UpdateCategory", ctx, executor, mock.AnythingOfType("*domain.Category")).Return(util.ErrNotFound)

	svc := NewCategoryService(executor, repo)
	_, err := svc.UpdateCategory(ctx, &domain.Category{ID: 99, Name: "Gone"})

	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	executor := new(MockDBExecutor)

	// A category still referenced by operations comes back as a conflict.
	repo.On("DeleteCategory", ctx, executor, int64(3)).Return(util.ErrCategoryInUse)

	svc := NewCategoryService(executor, repo)
	err := svc.DeleteCategory(ctx, 3)

	assert.ErrorIs(t, err, util.ErrCategoryInUse)
}
