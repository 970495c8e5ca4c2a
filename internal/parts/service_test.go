package parts

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/pagination"
)

type stubPartsStore struct {
	parts map[uuid.UUID]*models.Part
}

func (s *stubPartsStore) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubPartsStore) Create(ctx context.Context, part *models.Part) (*models.Part, error) {
	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}
	s.parts[part.ID] = part
	return part, nil
}

func (s *stubPartsStore) Update(ctx context.Context, part *models.Part) (*models.Part, error) {
	s.parts[part.ID] = part
	return part, nil
}

func (s *stubPartsStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	delete(s.parts, id)
	return nil
}

func (s *stubPartsStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Part, error) {
	part, ok := s.parts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *part
	return &clone, nil
}

func (s *stubPartsStore) ListByTenant(ctx context.Context, tenantID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Part, error) {
	rows := make([]models.Part, 0, len(s.parts))
	for _, part := range s.parts {
		if cursor != nil && !part.CreatedAt.Before(cursor.CreatedAt) {
			continue
		}
		rows = append(rows, *part)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *stubPartsStore) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]models.Part, error) {
	var rows []models.Part
	for _, part := range s.parts {
		if part.LowStock() {
			rows = append(rows, *part)
		}
	}
	return rows, nil
}

func (s *stubPartsStore) DecrementStock(ctx context.Context, tenantID, partID uuid.UUID, quantity int) (bool, error) {
	part, ok := s.parts[partID]
	if !ok || part.StockQuantity < quantity {
		return false, nil
	}
	part.StockQuantity -= quantity
	return true, nil
}

func (s *stubPartsStore) IncrementStock(ctx context.Context, tenantID, partID uuid.UUID, quantity int) error {
	if part, ok := s.parts[partID]; ok {
		part.StockQuantity += quantity
	}
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newPartsFixture(t *testing.T) (Service, *stubPartsStore, uuid.UUID) {
	t.Helper()
	store := &stubPartsStore{parts: make(map[uuid.UUID]*models.Part)}
	svc, err := NewService(store, stubTx{})
	if err != nil {
		t.Fatalf("unexpected error building service: %v", err)
	}
	return svc, store, uuid.New()
}

func TestAdjustStockIncrement(t *testing.T) {
	svc, store, tenantID := newPartsFixture(t)
	partID := uuid.New()
	store.parts[partID] = &models.Part{ID: partID, TenantID: tenantID, Name: "spark plug", StockQuantity: 2}

	part, err := svc.AdjustStock(context.Background(), tenantID, partID, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if part.StockQuantity != 7 {
		t.Fatalf("expected stock 7, got %d", part.StockQuantity)
	}
}

func TestAdjustStockDecrementInsufficient(t *testing.T) {
	svc, store, tenantID := newPartsFixture(t)
	partID := uuid.New()
	store.parts[partID] = &models.Part{ID: partID, TenantID: tenantID, Name: "spark plug", StockQuantity: 2}

	_, err := svc.AdjustStock(context.Background(), tenantID, partID, -3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if store.parts[partID].StockQuantity != 2 {
		t.Fatalf("expected untouched stock, got %d", store.parts[partID].StockQuantity)
	}
}

func TestAdjustStockZeroDeltaRejected(t *testing.T) {
	svc, _, tenantID := newPartsFixture(t)

	_, err := svc.AdjustStock(context.Background(), tenantID, uuid.New(), 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsNegativeMoney(t *testing.T) {
	svc, _, tenantID := newPartsFixture(t)

	_, err := svc.Create(context.Background(), tenantID, CreatePartInput{
		Name:     "gasket",
		CostLKR:  decimal.RequireFromString("-1"),
		PriceLKR: decimal.Zero,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListPagesCatalog(t *testing.T) {
	svc, store, tenantID := newPartsFixture(t)
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := uuid.New()
		store.parts[id] = &models.Part{
			ID:        id,
			TenantID:  tenantID,
			Name:      "filter",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	first, err := svc.List(context.Background(), tenantID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(first.Items))
	}
	if first.NextCursor == "" {
		t.Fatalf("expected next cursor on a partial page")
	}
	if !first.Items[0].CreatedAt.After(first.Items[1].CreatedAt) {
		t.Fatalf("expected newest-first ordering")
	}

	second, err := svc.List(context.Background(), tenantID, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	for _, item := range second.Items {
		if !item.CreatedAt.Before(first.Items[1].CreatedAt) {
			t.Fatalf("second page overlaps the first")
		}
	}
}

func TestListRejectsBadCursor(t *testing.T) {
	svc, _, tenantID := newPartsFixture(t)

	_, err := svc.List(context.Background(), tenantID, pagination.Params{Cursor: "not-base64!"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
