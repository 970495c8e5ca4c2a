package parts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/pagination"
)

// Service exposes parts inventory operations.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreatePartInput) (*models.Part, error)
	Update(ctx context.Context, tenantID, partID uuid.UUID, input UpdatePartInput) (*models.Part, error)
	Delete(ctx context.Context, tenantID, partID uuid.UUID) error
	Get(ctx context.Context, tenantID, partID uuid.UUID) (*models.Part, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*Page, error)
	ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]models.Part, error)
	AdjustStock(ctx context.Context, tenantID, partID uuid.UUID, delta int) (*models.Part, error)
}

// Page is one slice of the parts catalog. NextCursor is empty on the
// last page.
type Page struct {
	Items      []models.Part `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// CreatePartInput holds the validated payload to create a part.
type CreatePartInput struct {
	Name          string
	PartNumber    *string
	StockQuantity int
	MinStockLevel int
	CostLKR       decimal.Decimal
	PriceLKR      decimal.Decimal
}

// UpdatePartInput holds optional mutation values for a part. Stock edits
// through this path are absolute; relative edits use AdjustStock.
type UpdatePartInput struct {
	Name          *string
	PartNumber    *string
	StockQuantity *int
	MinStockLevel *int
	CostLKR       *decimal.Decimal
	PriceLKR      *decimal.Decimal
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService constructs the parts service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("parts repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreatePartInput) (*models.Part, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part name required")
	}
	if input.StockQuantity < 0 || input.MinStockLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantities cannot be negative")
	}
	if input.CostLKR.IsNegative() || input.PriceLKR.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part cost and price cannot be negative")
	}
	part := &models.Part{
		TenantID:      tenantID,
		Name:          name,
		PartNumber:    input.PartNumber,
		StockQuantity: input.StockQuantity,
		MinStockLevel: input.MinStockLevel,
		CostLKR:       input.CostLKR,
		PriceLKR:      input.PriceLKR,
	}
	created, err := s.repo.Create(ctx, part)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create part")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, tenantID, partID uuid.UUID, input UpdatePartInput) (*models.Part, error) {
	part, err := s.repo.FindByID(ctx, tenantID, partID)
	if err != nil {
		return nil, notFoundOr(err, "part not found")
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "part name cannot be empty")
		}
		part.Name = name
	}
	if input.PartNumber != nil {
		part.PartNumber = input.PartNumber
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
		}
		part.StockQuantity = *input.StockQuantity
	}
	if input.MinStockLevel != nil {
		if *input.MinStockLevel < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min stock level cannot be negative")
		}
		part.MinStockLevel = *input.MinStockLevel
	}
	if input.CostLKR != nil {
		if input.CostLKR.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "part cost cannot be negative")
		}
		part.CostLKR = *input.CostLKR
	}
	if input.PriceLKR != nil {
		if input.PriceLKR.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "part price cannot be negative")
		}
		part.PriceLKR = *input.PriceLKR
	}
	updated, err := s.repo.Update(ctx, part)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update part")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, tenantID, partID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, partID); err != nil {
		return notFoundOr(err, "part not found")
	}
	if err := s.repo.Delete(ctx, tenantID, partID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete part")
	}
	return nil
}

func (s *service) Get(ctx context.Context, tenantID, partID uuid.UUID) (*models.Part, error) {
	part, err := s.repo.FindByID(ctx, tenantID, partID)
	if err != nil {
		return nil, notFoundOr(err, "part not found")
	}
	return part, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByTenant(ctx, tenantID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list parts")
	}
	page := &Page{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]models.Part, error) {
	rows, err := s.repo.ListLowStock(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock parts")
	}
	return rows, nil
}

// AdjustStock applies a relative stock change. Negative deltas run the
// same conditional decrement job part additions rely on, so the quantity
// can never be driven below zero.
func (s *service) AdjustStock(ctx context.Context, tenantID, partID uuid.UUID, delta int) (*models.Part, error) {
	if delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock delta cannot be zero")
	}
	if _, err := s.repo.FindByID(ctx, tenantID, partID); err != nil {
		return nil, notFoundOr(err, "part not found")
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if delta > 0 {
			return repo.IncrementStock(ctx, tenantID, partID, delta)
		}
		ok, err := repo.DecrementStock(ctx, tenantID, partID, -delta)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust stock")
	}
	part, err := s.repo.FindByID(ctx, tenantID, partID)
	if err != nil {
		return nil, notFoundOr(err, "part not found")
	}
	return part, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
