package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
)

type samplePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","quantity":2}`))
	var dest samplePayload
	if err := DecodeJSONBody(r, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Email != "a@b.com" || dest.Quantity != 2 {
		t.Fatalf("unexpected decode result %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","quantity":1,"extra":true}`))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected unknown field rejection")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidRequest {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestDecodeJSONBodyValidationDetailsUseJSONNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"nope","quantity":-1}`))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	if _, ok := details["email"]; !ok {
		t.Fatalf("expected email field detail, got %v", details)
	}
	if _, ok := details["quantity"]; !ok {
		t.Fatalf("expected quantity field detail, got %v", details)
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3", nil)
	got, err := ParseQueryInt(r, "page", 1, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	if got, _ := ParseQueryInt(r, "page", 1, 1, 100); got != 1 {
		t.Fatalf("expected default 1, got %d", got)
	}

	r = httptest.NewRequest("GET", "/?page=abc", nil)
	if _, err := ParseQueryInt(r, "page", 1, 1, 100); err == nil {
		t.Fatal("expected numeric error")
	}

	r = httptest.NewRequest("GET", "/?page=500", nil)
	if _, err := ParseQueryInt(r, "page", 1, 1, 100); err == nil {
		t.Fatal("expected range error")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("expected truncation, got %q", got)
	}
}
