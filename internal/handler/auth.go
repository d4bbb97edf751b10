package handler

import (
	"net/http"

	"github.com/papertrail/storefront/internal"
	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/middleware"
	"github.com/papertrail/storefront/internal/service"
)

// AuthHandler serves account registration and sign-in. Logging in binds
// the visitor's session to the account and merges any anonymous cart.
type AuthHandler struct {
	users   service.UserService
	session internal.SessionConfig
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users service.UserService, session internal.SessionConfig) *AuthHandler {
	return &AuthHandler{users: users, session: session}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), h.sessionToken(r), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, publicUser(user))
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.users.Login(r.Context(), h.sessionToken(r), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, publicUser(user))
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context(), h.sessionToken(r)); err != nil {
		RespondError(w, r, err)
		return
	}
	middleware.ClearSessionCookie(w, h.session)
	RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Me handles GET /me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())
	if user == nil {
		RespondJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"user": publicUser(*user)})
}

// sessionToken returns the request's session token. The identity set by
// the session middleware is authoritative; it covers the first visit,
// where the cookie is only on the response.
func (h *AuthHandler) sessionToken(r *http.Request) string {
	if identity := identityFrom(r); identity.SessionToken != "" {
		return identity.SessionToken
	}
	cookie, err := r.Cookie(h.session.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// publicUser strips fields that never leave the server.
func publicUser(u domain.User) map[string]any {
	return map[string]any{
		"id":             u.ID,
		"email":          u.Email,
		"full_name":      u.FullName,
		"contact_number": u.ContactNumber,
		"house_address":  u.HouseAddress,
		"is_admin":       u.IsAdmin,
		"created_at":     u.CreatedAt,
	}
}
