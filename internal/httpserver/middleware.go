package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	authdomain "cinemacenter/backend/internal/domain/auth"
	"cinemacenter/backend/internal/logging"
	"cinemacenter/backend/internal/metrics"
	authusecase "cinemacenter/backend/internal/usecase/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const requestIDHeader = "X-Request-ID"

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (r *responseRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = logging.NewRequestID()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// withLogging writes one access log line and counts the request by route pattern.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)

		status := recorder.statusCode()
		metrics.HTTPRequests.WithLabelValues(r.Method, routePattern(r), strconv.Itoa(status)).Inc()
		logging.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", recorder.size).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func withCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})
}

// authMiddleware runs the bearer strategy and stores the resolved user in the context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		user, err := s.authService.VerifyToken(r.Context(), token)
		if err != nil {
			metrics.AuthzDecisions.WithLabelValues(string(authdomain.DecisionRejected)).Inc()
			switch {
			case token == "":
				writeError(w, http.StatusUnauthorized, "authorization token required")
			case errors.Is(err, authdomain.ErrExpiredToken):
				writeError(w, http.StatusUnauthorized, "token expired")
			case errors.Is(err, authdomain.ErrInvalidToken), errors.Is(err, authdomain.ErrUserNotFound):
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
			default:
				logging.Ctx(r.Context()).Error().Err(err).Msg("token verification failed")
				writeInternalError(w)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireOwner admits the request only when the caller's username matches {username}.
func (s *Server) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		target := pathParam(r, "username")
		if err := authusecase.Authorize(user, target); err != nil {
			metrics.AuthzDecisions.WithLabelValues(string(authdomain.DecisionForbidden)).Inc()
			logging.Ctx(r.Context()).Warn().
				Str("username", user.Username).
				Str("target", target).
				Msg("access to another user's resource denied")
			writeError(w, http.StatusForbidden, "permission denied")
			return
		}

		metrics.AuthzDecisions.WithLabelValues(string(authdomain.DecisionAuthorized)).Inc()
		next.ServeHTTP(w, r)
	})
}

type ctxKeyUser struct{}

func currentUserFromContext(ctx context.Context) (*authdomain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser{}).(*authdomain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func extractBearerToken(header string) string {
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
