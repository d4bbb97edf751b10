package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "cart.add",
				Message: "invalid input",
			},
			expected: "cart.add: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "checkout.place",
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "checkout.place: failed to save: database connection failed",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "failed to save: database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error",
			err:      &Error{Code: EINVALID, Message: "test"},
			expected: EINVALID,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("wrapped: %w", &Error{Code: ENOTFOUND, Message: "test"}),
			expected: ENOTFOUND,
		},
		{
			name:     "non-domain error",
			err:      errors.New("some error"),
			expected: EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "user-facing error",
			err:      Invalid("cart.add", "quantity must be positive"),
			expected: "quantity must be positive",
		},
		{
			name:     "internal error hides details",
			err:      Internal(errors.New("pq: connection refused"), "checkout.place", "failed to save order"),
			expected: "An internal error occurred. Please try again later.",
		},
		{
			name:     "non-domain error hides details",
			err:      errors.New("pq: connection refused"),
			expected: "An internal error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError("checkout.validate")
	ve.AddFieldError("email", "email is required")
	var err error = ve

	if !IsValidationError(err) {
		t.Fatal("expected IsValidationError to be true")
	}
	if ErrorCode(err) != EINVALID {
		t.Fatalf("expected EINVALID, got %q", ErrorCode(err))
	}

	ve.AddFieldError("full_name", "full name is required")

	fields := GetValidationFields(err)
	if len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(fields))
	}
	if fields["email"] != "email is required" {
		t.Errorf("unexpected email error: %q", fields["email"])
	}
	if fields["full_name"] != "full name is required" {
		t.Errorf("unexpected full_name error: %q", fields["full_name"])
	}
}

func TestIsCode(t *testing.T) {
	err := Conflict("checkout.place", "insufficient stock")

	if !IsCode(err, ECONFLICT) {
		t.Error("expected IsCode(err, ECONFLICT) to be true")
	}
	if IsCode(err, ENOTFOUND) {
		t.Error("expected IsCode(err, ENOTFOUND) to be false")
	}
}
