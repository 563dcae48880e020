package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"socialfeed/internal/logging"
)

type ctxKey struct{}

// WithUserID marks ctx as belonging to an authenticated caller.
func WithUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserIDFromContext returns the authenticated caller, if any.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(ctxKey{}).(uint)
	return id, ok && id != 0
}

// Authenticator resolves callers from a bearer token or the session cookie.
type Authenticator struct {
	tokens   *TokenManager
	sessions sessions.Store
	logger   logrus.FieldLogger
}

func NewAuthenticator(tokens *TokenManager, store sessions.Store, logger logrus.FieldLogger) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: store, logger: logger}
}

// Identify attaches the caller to the request context when credentials are
// present. A malformed or expired bearer token is rejected with 401.
func (a *Authenticator) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if header := r.Header.Get("Authorization"); header != "" {
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorized(w, "Unsupported authorization scheme")
				return
			}
			claims, err := a.tokens.Validate(strings.TrimSpace(raw))
			if err != nil {
				logging.FromContext(r.Context(), a.logger).WithError(err).Warn("Rejected bearer token")
				unauthorized(w, "Invalid or expired token")
				return
			}
			id, err := claims.UserID()
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
			return
		}

		if id, ok := sessionUser(a.sessions, r); ok {
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser answers 401 unless Identify found a caller.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			unauthorized(w, "Authentication credentials were not provided")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="socialfeed"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    http.StatusUnauthorized,
		"error_msg": msg,
	})
}
