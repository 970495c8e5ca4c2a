package tenants

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

type stubTenantStore struct {
	tenant  *models.Tenant
	findErr error
	updated *models.Tenant
}

func (s *stubTenantStore) Update(_ context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	s.updated = tenant
	return tenant, nil
}

func (s *stubTenantStore) FindByID(_ context.Context, _ uuid.UUID) (*models.Tenant, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.tenant, nil
}

func fixtureTenant() *models.Tenant {
	return &models.Tenant{
		ID:               uuid.New(),
		Name:             "AutoFix Kandy",
		CurrencyCode:     "LKR",
		DefaultLaborRate: decimal.RequireFromString("1500"),
		ThemeColor:       "#1e88e5",
	}
}

func TestGetMapsMissingWorkshop(t *testing.T) {
	svc, err := NewService(&stubTenantStore{findErr: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateSettingsNormalizesCurrency(t *testing.T) {
	store := &stubTenantStore{tenant: fixtureTenant()}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	code := " usd "
	updated, err := svc.UpdateSettings(context.Background(), store.tenant.ID, UpdateSettingsInput{CurrencyCode: &code})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if updated.CurrencyCode != "USD" {
		t.Fatalf("expected upper-cased currency code, got %q", updated.CurrencyCode)
	}
}

func TestUpdateSettingsRejectsBadCurrency(t *testing.T) {
	store := &stubTenantStore{tenant: fixtureTenant()}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	code := "RUPEES"
	_, err = svc.UpdateSettings(context.Background(), store.tenant.ID, UpdateSettingsInput{CurrencyCode: &code})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.updated != nil {
		t.Fatalf("update must not reach the repository on invalid input")
	}
}

func TestUpdateSettingsRejectsBadThemeColor(t *testing.T) {
	store := &stubTenantStore{tenant: fixtureTenant()}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	color := "blue"
	_, err = svc.UpdateSettings(context.Background(), store.tenant.ID, UpdateSettingsInput{ThemeColor: &color})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateSettingsRejectsNegativeLaborRate(t *testing.T) {
	store := &stubTenantStore{tenant: fixtureTenant()}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	rate := decimal.RequireFromString("-50")
	_, err = svc.UpdateSettings(context.Background(), store.tenant.ID, UpdateSettingsInput{DefaultLaborRate: &rate})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateSettingsAppliesServicesList(t *testing.T) {
	store := &stubTenantStore{tenant: fixtureTenant()}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	services := []string{"full service", "engine tune-up", "wheel alignment"}
	updated, err := svc.UpdateSettings(context.Background(), store.tenant.ID, UpdateSettingsInput{Services: &services})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if len(updated.Services) != 3 || updated.Services[1] != "engine tune-up" {
		t.Fatalf("expected services list persisted, got %v", updated.Services)
	}
}
