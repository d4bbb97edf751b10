package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/papertrail/storefront/internal/domain"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"unknown_code", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := ErrorCodeToHTTPStatus(tt.code); got != tt.expected {
			t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", tt.code, got, tt.expected)
		}
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/cart/items", nil)

	RespondError(w, r, domain.Conflict("cart.add", "Only 2 of Dot Grid Notebook in stock"))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if envelope.Error.Code != domain.ECONFLICT {
		t.Errorf("expected code %q, got %q", domain.ECONFLICT, envelope.Error.Code)
	}
	if envelope.Error.Message != "Only 2 of Dot Grid Notebook in stock" {
		t.Errorf("unexpected message: %q", envelope.Error.Message)
	}
}

func TestRespondErrorValidationFields(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/checkout", nil)

	ve := domain.NewValidationError("checkout.place")
	ve.AddFieldError("email", "Enter a valid email address")
	ve.AddFieldError("address", "Delivery address is required")
	RespondError(w, r, ve)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var envelope struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if envelope.Error.Code != domain.EINVALID {
		t.Errorf("expected code %q, got %q", domain.EINVALID, envelope.Error.Code)
	}
	if len(envelope.Error.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(envelope.Error.Fields))
	}
	if envelope.Error.Fields["email"] != "Enter a valid email address" {
		t.Errorf("unexpected email field error: %q", envelope.Error.Fields["email"])
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/products", nil)

	RespondError(w, r, errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "An internal error occurred") {
		t.Errorf("expected generic message in %q", body)
	}
	if strings.Contains(body, "connection refused") {
		t.Errorf("internal details leaked: %q", body)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/cart/items",
		strings.NewReader(`{"product_id": 1, "quantity": 2, "surprise": true}`))

	var input struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := decodeJSON(r, &input); err == nil {
		t.Error("expected unknown field to be rejected")
	}
}
