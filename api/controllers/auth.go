package controllers

import (
	"net/http"
	"strings"

	"github.com/sahanmw/wrenchworks-backend/api/middleware"
	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	"github.com/sahanmw/wrenchworks-backend/internal/auth"
	pkgauth "github.com/sahanmw/wrenchworks-backend/pkg/auth"
	"github.com/sahanmw/wrenchworks-backend/pkg/config"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

func parseBearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-WW-Token", result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}

// AuthRegister onboards a workshop and immediately logs its owner in.
func AuthRegister(registerSvc auth.RegisterService, loginSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registerSvc == nil || loginSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := registerSvc.Register(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := loginSvc.Login(r.Context(), auth.LoginRequest{Email: body.Email, Password: body.Password})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-WW-Token", result.AccessToken)
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthRefresh rotates the refresh token and issues a new access token.
// The expired access token identifies the session being rotated.
func AuthRefresh(svc auth.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RefreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := parseBearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgauth.ParseAccessTokenAllowExpired(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}

		result, err := svc.Refresh(r.Context(), claims, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-WW-Token", result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the refresh mapping tied to the presented access token.
func AuthLogout(svc auth.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		token, err := parseBearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgauth.ParseAccessTokenAllowExpired(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}

		if err := svc.Logout(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthResetPassword changes the authenticated caller's password.
func AuthResetPassword(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID, err := userFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.ResetPasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResetPassword(r.Context(), userID, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "password_updated"})
	}
}

// AuthMe returns the claims-backed identity for the current token.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{
			"user_id":   middleware.UserIDFromContext(r.Context()),
			"tenant_id": middleware.TenantIDFromContext(r.Context()),
			"role":      middleware.RoleFromContext(r.Context()),
		}
		responses.WriteSuccess(w, payload)
	}
}
