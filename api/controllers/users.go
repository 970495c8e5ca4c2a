package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/internal/users"
	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type staffLister interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.User, error)
}

// StaffList returns the workshop's staff accounts.
func StaffList(repo staffLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user repository unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		staff, err := repo.ListByTenant(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list staff"))
			return
		}

		dtos := make([]users.UserDTO, 0, len(staff))
		for i := range staff {
			dtos = append(dtos, users.FromModel(&staff[i]))
		}
		responses.WriteSuccess(w, dtos)
	}
}
