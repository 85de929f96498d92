package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/avolkov3/simpledb/internal/common"
	"github.com/avolkov3/simpledb/internal/logging"
	"github.com/avolkov3/simpledb/internal/server/models"
)

type contextKey int

const userContextKey contextKey = iota

// Authenticator guards the bearer endpoints. It extracts the bearer token,
// resolves it to a live user record, and rejects unvalidated accounts. The
// user lands in the request context for handlers to pick up.
func (h *Handlers) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		token := strings.TrimPrefix(header, common.BearerPrefix)

		user, err := h.users.Authenticate(r.Context(), token)
		if err != nil {
			h.serviceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the authenticated user placed by Authenticator.
// Handlers behind the middleware can rely on it being present.
func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// requestLogger logs one line per request with method, path, status and
// duration.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
