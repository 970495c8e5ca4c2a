package expenses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

// Service exposes manual expense ledger operations. Only manual entries
// live here; system-derived expenses are synthesized by the billing
// aggregator and never stored.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, tenantID, expenseID uuid.UUID, input UpdateExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error
	Get(ctx context.Context, tenantID, expenseID uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error)
}

// CreateExpenseInput holds the validated payload to record an expense.
type CreateExpenseInput struct {
	JobCardID   *uuid.UUID
	Category    string
	Description string
	AmountLKR   decimal.Decimal
	Date        time.Time
}

// UpdateExpenseInput holds optional mutation values for an expense.
type UpdateExpenseInput struct {
	JobCardID   *uuid.UUID
	Category    *string
	Description *string
	AmountLKR   *decimal.Decimal
	Date        *time.Time
}

type expenseStore interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Expense, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error)
}

type service struct {
	repo expenseStore
}

// NewService constructs the expense service.
func NewService(repo expenseStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("expense repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateExpenseInput) (*models.Expense, error) {
	if !input.AmountLKR.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount must be positive")
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense date required")
	}
	expense := &models.Expense{
		TenantID:    tenantID,
		JobCardID:   input.JobCardID,
		Category:    enums.Normalize(input.Category),
		Description: strings.TrimSpace(input.Description),
		AmountLKR:   input.AmountLKR,
		Date:        input.Date,
	}
	created, err := s.repo.Create(ctx, expense)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create expense")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, tenantID, expenseID uuid.UUID, input UpdateExpenseInput) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, tenantID, expenseID)
	if err != nil {
		return nil, notFoundOr(err, "expense not found")
	}
	if input.JobCardID != nil {
		expense.JobCardID = input.JobCardID
	}
	if input.Category != nil {
		expense.Category = enums.Normalize(*input.Category)
	}
	if input.Description != nil {
		expense.Description = strings.TrimSpace(*input.Description)
	}
	if input.AmountLKR != nil {
		if !input.AmountLKR.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount must be positive")
		}
		expense.AmountLKR = *input.AmountLKR
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense date cannot be empty")
		}
		expense.Date = *input.Date
	}
	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update expense")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, expenseID); err != nil {
		return notFoundOr(err, "expense not found")
	}
	if err := s.repo.Delete(ctx, tenantID, expenseID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense")
	}
	return nil
}

func (s *service) Get(ctx context.Context, tenantID, expenseID uuid.UUID) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, tenantID, expenseID)
	if err != nil {
		return nil, notFoundOr(err, "expense not found")
	}
	return expense, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return rows, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
