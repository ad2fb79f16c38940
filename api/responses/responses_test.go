package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
	"github.com/shopmallhq/shopmall-backend/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.ResultCode != types.ResultCodeOK {
		t.Fatalf("unexpected result code %s", body.ResultCode)
	}
	if body.ResultMsg != "OK" {
		t.Fatalf("unexpected result msg %s", body.ResultMsg)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInvalidRequest, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.ResultCode != string(pkgerrors.CodeInvalidRequest) {
		t.Fatalf("unexpected code %s", body.ResultCode)
	}
	if body.ResultMsg != "bad input" {
		t.Fatalf("expected typed message passthrough, got %q", body.ResultMsg)
	}
	if body.Data != nil {
		t.Fatalf("error envelope data should be null")
	}
	if body.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.ResultCode != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.ResultCode)
	}
	if body.Details != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
}

func TestWriteErrorVariantCodes(t *testing.T) {
	cases := []struct {
		code   pkgerrors.Code
		status int
	}{
		{pkgerrors.CodeVariantRequired, http.StatusBadRequest},
		{pkgerrors.CodeVariantNotAllowed, http.StatusBadRequest},
		{pkgerrors.CodeVariantUnavailable, http.StatusConflict},
		{pkgerrors.CodeVariantPriceInvalid, http.StatusUnprocessableEntity},
		{pkgerrors.CodeProductNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(context.Background(), nil, w, pkgerrors.New(tc.code, "engine rejection"))
			if w.Code != tc.status {
				t.Fatalf("expected status %d for %s, got %d", tc.status, tc.code, w.Code)
			}
		})
	}
}
