// Package responses renders the JSON envelopes every handler returns.
// Success payloads pass through untouched; errors are filtered through
// the code taxonomy so internals never leak to the client.
package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
	"github.com/sahanmw/wrenchworks-backend/pkg/types"
)

// clientFault lists codes whose service message is safe to surface.
// Everything else renders only the generic public message for its code.
var clientFault = map[pkgerrors.Code]bool{
	pkgerrors.CodeValidation:    true,
	pkgerrors.CodeUnauthorized:  true,
	pkgerrors.CodeForbidden:     true,
	pkgerrors.CodeNotFound:      true,
	pkgerrors.CodeConflict:      true,
	pkgerrors.CodeStateConflict: true,
	pkgerrors.CodeIdempotency:   true,
	pkgerrors.CodeRateLimit:     true,
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WriteError maps err onto the wire: status and message come from the
// code metadata, details ride along only when the code allows them, and
// the full chain is logged with any Postgres driver context.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if clientFault[typed.Code()] && typed.Message() != "" {
		msg = typed.Message()
	}

	payload := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(typed.Code()),
			Message: msg,
		},
	}
	if meta.DetailsAllowed {
		payload.Error.Details = typed.Details()
	}

	if logg != nil {
		logError(ctx, logg, err, typed)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func logError(ctx context.Context, logg *logger.Logger, err error, typed *pkgerrors.Error) {
	dump := pkgerrors.Dump(err)
	fields := map[string]any{
		"error":         dump.TopMessage,
		"error_code":    dump.Code,
		"error_chain":   dump.Chain,
		"pg_code":       dump.PGCode,
		"pg_detail":     dump.PGDetail,
		"pg_message":    dump.PGMessage,
		"pg_table":      dump.PGTable,
		"pg_column":     dump.PGColumn,
		"pg_constraint": dump.PGConstraint,
	}
	if dm, ok := typed.Details().(map[string]any); ok {
		if step, ok := dm["step"]; ok {
			fields["step"] = step
		}
	}
	logg.Error(logg.WithFields(ctx, fields), "request.error", err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
