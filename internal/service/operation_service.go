// internal/service/operation_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"exptr-api/internal/domain"
	"exptr-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CategorySummary is a per-category aggregate with the total expressed in
// major currency units.
type CategorySummary struct {
	CategoryID   int64                `json:"category_id"`
	CategoryName string               `json:"category_name"`
	Type         domain.OperationType `json:"type"`
	Currency     string               `json:"currency"`
	Total        decimal.Decimal      `json:"total"`
	Count        int64                `json:"count"`
}

// OperationService defines operation business logic.
type OperationService interface {
	CreateOperation(ctx context.Context, operation *domain.Operation) (*domain.Operation, error)
	UpdateOperation(ctx context.Context, operation *domain.Operation) (*domain.Operation, error)
	GetOperationByID(ctx context.Context, id int64) (*domain.Operation, error)
	GetOperationsByUserID(ctx context.Context, userID int64) ([]domain.Operation, error)
	DeleteOperation(ctx context.Context, id int64) error
	GetSummary(ctx context.Context, userID int64) ([]CategorySummary, error)
}

type operationService struct {
	dbExecutor    repository.DBExecutor
	operationRepo repository.OperationRepository
}

// NewOperationService creates a new instance of OperationService.
func NewOperationService(dbExecutor repository.DBExecutor, operationRepo repository.OperationRepository) OperationService {
	return &operationService{
		dbExecutor:    dbExecutor,
		operationRepo: operationRepo,
	}
}

func (s *operationService) CreateOperation(ctx context.Context, operation *domain.Operation) (*domain.Operation, error) {
	if err := s.operationRepo.CreateOperation(ctx, s.dbExecutor, operation); err != nil {
		return nil, fmt.Errorf("create operation: %w", err)
	}
	return operation, nil
}

func (s *operationService) UpdateOperation(ctx context.Context, operation *domain.Operation) (*domain.Operation, error) {
	operation.UpdatedAt = time.Now().UTC()
	if err := s.operationRepo.UpdateOperation(ctx, s.dbExecutor, operation); err != nil {
		return nil, fmt.Errorf("update operation: %w", err)
	}
	return operation, nil
}

func (s *operationService) GetOperationByID(ctx context.Context, id int64) (*domain.Operation, error) {
	operation, err := s.operationRepo.GetOperationByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return operation, nil
}

func (s *operationService) GetOperationsByUserID(ctx context.Context, userID int64) ([]domain.Operation, error) {
	operations, err := s.operationRepo.GetOperationsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get operations: %w", err)
	}
	return operations, nil
}

func (s *operationService) DeleteOperation(ctx context.Context, id int64) error {
	if err := s.operationRepo.DeleteOperation(ctx, s.dbExecutor, id); err != nil {
		return fmt.Errorf("delete operation: %w", err)
	}
	return nil
}

// GetSummary aggregates the user's operations per category and converts the
// minor-unit totals to major units.
func (s *operationService) GetSummary(ctx context.Context, userID int64) ([]CategorySummary, error) {
	totals, err := s.operationRepo.GetCategorySummary(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}

	summaries := make([]CategorySummary, 0, len(totals))
	for i := range totals {
		t := &totals[i]
		summaries = append(summaries, CategorySummary{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Type:         t.Type,
			Currency:     t.Currency,
			Total:        t.Total(),
			Count:        t.Count,
		})
	}
	return summaries, nil
}
