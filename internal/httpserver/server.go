package httpserver

import (
	"context"
	"net/http"
	"strings"

	"cinemacenter/backend/internal/config"
	authusecase "cinemacenter/backend/internal/usecase/auth"
	movieusecase "cinemacenter/backend/internal/usecase/movie"
	userusecase "cinemacenter/backend/internal/usecase/user"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer   *http.Server
	router       chi.Router
	authService  *authusecase.Service
	userService  *userusecase.Service
	movieService *movieusecase.Service
	addr         string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(
	cfg config.Config,
	authService *authusecase.Service,
	userService *userusecase.Service,
	movieService *movieusecase.Service,
) *Server {
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	router := chi.NewRouter()
	router.Use(withRequestID)
	router.Use(withLogging)
	router.Use(chimiddleware.Recoverer)
	router.Use(withCORS(cfg.AllowedOrigins))

	srv := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout(),
			WriteTimeout: cfg.WriteTimeout(),
			IdleTimeout:  cfg.IdleTimeout(),
		},
		router:       router,
		authService:  authService,
		userService:  userService,
		movieService: movieService,
		addr:         addr,
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
