package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/internal/tenants"
	"github.com/sahanmw/wrenchworks-backend/internal/users"
	"github.com/sahanmw/wrenchworks-backend/pkg/config"
	"github.com/sahanmw/wrenchworks-backend/pkg/db"
	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/security"
)

// RegisterService handles the workshop onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) error
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
	BillingConfig  config.BillingConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
	billingCfg  config.BillingConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
		billingCfg:  params.BillingConfig,
	}, nil
}

// Register creates the tenant and its owner account in one transaction.
// The tenant starts with the configured default labor rate and currency.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	workshopName := strings.TrimSpace(req.WorkshopName)
	if workshopName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "workshop name is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	laborRate, err := s.billingCfg.DefaultLaborRateDecimal()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse default labor rate")
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		tenantRepo := tenants.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		tenant, err := tenantRepo.Create(ctx, &models.Tenant{
			Name:             workshopName,
			Phone:            req.Phone,
			CurrencyCode:     s.billingCfg.CurrencyCode,
			DefaultLaborRate: laborRate,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create workshop")
		}

		if _, err := userRepo.Create(ctx, &models.User{
			TenantID:     tenant.ID,
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     strings.TrimSpace(req.FullName),
			Role:         enums.MemberRoleOwner,
			IsActive:     true,
		}); err != nil {
			// Two concurrent registrations can pass the email probe;
			// the unique index settles the race.
			if db.IsUniqueViolation(err, "users_email_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create owner account")
		}
		return nil
	})
}
