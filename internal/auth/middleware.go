package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"inventra/internal/apperr"
	"inventra/internal/models"
)

// SessionValidator resolves a session token to its account.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.User, error)
}

// RequireSession rejects requests without a valid session cookie and
// stores the resolved account in the request context.
func RequireSession(v SessionValidator, lg *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := v.ValidateSession(r.Context(), TokenFrom(r))
			if err != nil {
				kind := apperr.KindOf(err)
				if kind == apperr.KindInternal {
					lg.Errorw("session validation failed", "error", err)
				}
				writeError(w, apperr.Status(kind), apperr.PublicMessage(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireRole allows only accounts holding role. It must run after
// RequireSession.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFrom(r.Context())
			if u == nil || u.Role != role {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
