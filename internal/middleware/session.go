package middleware

import (
	"net/http"

	"github.com/papertrail/storefront/internal"
	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/service"
)

// Session resolves the request's session cookie, minting a fresh session
// when the cookie is missing or stale, and stores the resulting identity
// in the request context. Authenticated sessions also load the user.
//
// Every visitor gets a session so anonymous carts work before login.
func Session(users service.UserService, cfg internal.SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				token = cookie.Value
			}

			session, err := users.EnsureSession(r.Context(), token, cfg.TTL)
			if err != nil {
				respondJSONError(w, r, err)
				return
			}

			if session.Token != token {
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    session.Token,
					Path:     "/",
					Expires:  session.ExpiresAt,
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := r.Context()
			identity := domain.SessionIdentity(session.Token)

			user, err := users.UserBySession(ctx, session.Token)
			if err != nil {
				respondJSONError(w, r, err)
				return
			}
			if user != nil {
				identity = domain.AccountIdentity(user.ID)
				ctx = domain.NewContextWithUser(ctx, user)
			}

			ctx = domain.NewContextWithIdentity(ctx, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClearSessionCookie expires the session cookie, used on logout.
func ClearSessionCookie(w http.ResponseWriter, cfg internal.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
