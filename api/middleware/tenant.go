package middleware

import (
	"net/http"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

// TenantContext rejects requests whose token carries no workshop scope.
func TenantContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if TenantIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "workshop context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
