package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/papertrail/storefront/internal/domain"
)

// RequireUser rejects unauthenticated requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.UserFromContext(r.Context()) == nil {
			respondJSONError(w, r, domain.Unauthorized("auth.require", "Sign in to continue"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from non-admin accounts. Unauthenticated
// requests get 401, authenticated non-admins get 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := domain.UserFromContext(r.Context())
		if user == nil {
			respondJSONError(w, r, domain.Unauthorized("auth.require", "Sign in to continue"))
			return
		}
		if !user.IsAdmin {
			respondJSONError(w, r, domain.Forbidden("auth.admin", "Admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// respondJSONError writes a domain error as the standard error envelope.
// The handler package has a richer responder; this one keeps middleware
// free of a handler dependency.
func respondJSONError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForCode(code))

	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": domain.ErrorMessage(err),
		},
	})
}

func statusForCode(code string) int {
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
