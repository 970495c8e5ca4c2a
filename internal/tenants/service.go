package tenants

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

var themeColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Service exposes workshop settings operations.
type Service interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	UpdateSettings(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*models.Tenant, error)
}

// UpdateSettingsInput holds optional mutation values for workshop
// settings. DefaultLaborRate is the cost basis billing aggregation
// applies to logged labor, not the rate billed to customers.
type UpdateSettingsInput struct {
	Name             *string
	Phone            *string
	Address          *string
	CurrencyCode     *string
	DefaultLaborRate *decimal.Decimal
	ThemeColor       *string
	Services         *[]string
}

type tenantStore interface {
	Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

type service struct {
	repo tenantStore
}

// NewService constructs the tenant service.
func NewService(repo tenantStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "workshop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workshop")
	}
	return tenant, nil
}

func (s *service) UpdateSettings(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*models.Tenant, error) {
	tenant, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "workshop name cannot be empty")
		}
		tenant.Name = name
	}
	if input.Phone != nil {
		tenant.Phone = input.Phone
	}
	if input.Address != nil {
		tenant.Address = input.Address
	}
	if input.CurrencyCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.CurrencyCode))
		if len(code) != 3 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code must be three letters")
		}
		tenant.CurrencyCode = code
	}
	if input.DefaultLaborRate != nil {
		if input.DefaultLaborRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "default labor rate cannot be negative")
		}
		tenant.DefaultLaborRate = *input.DefaultLaborRate
	}
	if input.ThemeColor != nil {
		if !themeColorPattern.MatchString(*input.ThemeColor) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "theme color must be a #rrggbb value")
		}
		tenant.ThemeColor = *input.ThemeColor
	}
	if input.Services != nil {
		tenant.Services = pq.StringArray(*input.Services)
	}
	updated, err := s.repo.Update(ctx, tenant)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update workshop settings")
	}
	return updated, nil
}
