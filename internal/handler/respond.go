package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/middleware"
)

// maxBodyBytes caps request bodies. Nothing this API accepts is large.
const maxBodyBytes = 1 << 20

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// RespondError writes err as the standard error envelope. Internal
// errors are logged with their operation and underlying cause; the
// client sees only a generic message.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	if code == domain.EINTERNAL {
		middleware.GetLogger(r.Context()).Error("request failed",
			"op", domain.ErrorOp(err),
			"error", err,
		)
	}

	RespondJSON(w, ErrorCodeToHTTPStatus(code), errorEnvelope{Error: errorBody{
		Code:    code,
		Message: domain.ErrorMessage(err),
		Fields:  domain.GetValidationFields(err),
	}})
}

// RespondJSON writes v as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v, rejecting unknown fields
// and oversized bodies.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.Invalid("request.decode", "Request body is not valid JSON")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.Invalid("request.decode", "Request body must contain a single JSON object")
	}
	return nil
}

// identityFrom returns the request's cart-owner identity. The session
// middleware always sets one; the zero identity only appears when a
// route was registered outside the session chain.
func identityFrom(r *http.Request) domain.Identity {
	identity, _ := domain.IdentityFromContext(r.Context())
	return identity
}
