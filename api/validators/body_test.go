package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"name":"Nimal","email":"nimal@example.lk"}`))
		var dest samplePayload
		if err := DecodeJSONBody(r, &dest); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dest.Name != "Nimal" {
			t.Fatalf("unexpected name %q", dest.Name)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"name":"Nimal","extra":true}`))
		var dest samplePayload
		err := DecodeJSONBody(r, &dest)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"name":`))
		var dest samplePayload
		if err := DecodeJSONBody(r, &dest); err == nil {
			t.Fatalf("expected error for malformed body")
		}
	})

	t.Run("surfaces json tag names in details", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"email":"not-an-email"}`))
		var dest samplePayload
		err := DecodeJSONBody(r, &dest)
		typed := pkgerrors.As(err)
		if typed == nil {
			t.Fatalf("expected typed error, got %v", err)
		}
		details, ok := typed.Details().(map[string]string)
		if !ok {
			t.Fatalf("expected field details, got %T", typed.Details())
		}
		if _, ok := details["name"]; !ok {
			t.Fatalf("expected json tag name in details, got %v", details)
		}
		if _, ok := details["email"]; !ok {
			t.Fatalf("expected email violation in details, got %v", details)
		}
	})
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  ABC-1234  ", 32); got != "ABC-1234" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := SanitizeString("abcdefgh", 4); got != "abcd" {
		t.Fatalf("expected truncation to 4, got %q", got)
	}
}
