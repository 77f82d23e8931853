package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cinemacenter/backend/internal/config"
	authdomain "cinemacenter/backend/internal/domain/auth"
	moviedomain "cinemacenter/backend/internal/domain/movie"
	"cinemacenter/backend/internal/httpserver"
	"cinemacenter/backend/internal/infrastructure/memory"
	"cinemacenter/backend/internal/infrastructure/password"
	"cinemacenter/backend/internal/infrastructure/postgres"
	"cinemacenter/backend/internal/infrastructure/token"
	"cinemacenter/backend/internal/logging"
	authusecase "cinemacenter/backend/internal/usecase/auth"
	movieusecase "cinemacenter/backend/internal/usecase/movie"
	userusecase "cinemacenter/backend/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, authdomain.ErrConfiguration) {
			logging.Fatal().Err(err).Msg("refusing to start without a signing secret")
		}
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	hasher, err := password.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid bcrypt cost")
	}
	tokenManager, err := token.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to configure token issuer")
	}

	rootCtx := context.Background()

	var (
		users  authdomain.UserRepository
		movies moviedomain.Repository
	)
	switch cfg.Storage {
	case config.StorageMemory:
		users = memory.NewUserRepository()
		movies = memory.NewMovieRepository(moviedomain.SeedCatalog()...)
		logging.Warn().Msg("using in-memory storage; data is lost on restart")
	default:
		db, err := postgres.New(rootCtx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		if err := db.Migrate(rootCtx); err != nil {
			logging.Fatal().Err(err).Msg("failed to run database migrations")
		}
		users = postgres.NewUserRepository(db.Pool)
		movies = postgres.NewMovieRepository(db.Pool)
	}

	authService := authusecase.NewService(users, tokenManager, hasher)
	userService := userusecase.NewService(users, movies, hasher)
	movieService := movieusecase.NewService(movies)

	if cfg.SeedMovies && cfg.Storage == config.StoragePostgres {
		n, err := movieService.SeedIfEmpty(rootCtx, moviedomain.SeedCatalog())
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to seed movie catalog")
		}
		logging.Info().Int("movies", n).Msg("movie catalog seeded")
	}

	server := httpserver.NewServer(cfg, authService, userService, movieService)
	logging.Info().Str("addr", server.Addr()).Str("storage", cfg.Storage).Msg("HTTP server listening")

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logging.Info().Msg("HTTP server closed")
				return
			}
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logging.Info().Msg("graceful shutdown completed")
	}
}
