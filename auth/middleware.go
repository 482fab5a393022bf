package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
)

type contextKey struct{}

var userKey contextKey

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext extracts the authenticated user placed by Middleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey).(domain.User)
	return u, ok
}

// Middleware gates a route group behind a valid session. The session token is
// read from the session cookie or an Authorization bearer header. A missing
// token yields 401; a corrupt or expired token additionally clears the stored
// cookie so the client falls back to the unauthenticated state cleanly.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				unauthorized(w, "Authentication required")
				return
			}

			user, err := tokens.Verify(tokenString)
			if err != nil {
				logging.Warn("Rejected corrupt or expired session", "remote_addr", r.RemoteAddr)
				ClearSessionCookie(w)
				unauthorized(w, "Session is invalid or has expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// SetSessionCookie stores a session token under the fixed cookie key.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the stored session, recovering from logout and
// from corrupt-session states.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"error":   "unauthenticated",
		"message": message,
		"code":    http.StatusUnauthorized,
	}); err != nil {
		logging.Error("Failed to encode JSON response", "error", err)
	}
}
