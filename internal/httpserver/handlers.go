package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	authdomain "cinemacenter/backend/internal/domain/auth"
	moviedomain "cinemacenter/backend/internal/domain/movie"
	"cinemacenter/backend/internal/logging"
	"cinemacenter/backend/internal/metrics"
	authusecase "cinemacenter/backend/internal/usecase/auth"
	userusecase "cinemacenter/backend/internal/usecase/user"
	"cinemacenter/backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

const (
	dateLayout             = "2006-01-02"
	passwordTooLongMessage = "Password must be at most 72 bytes"
)

func (s *Server) registerRoutes() {
	r := s.router
	r.Get("/", s.handleWelcome)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Post("/login", s.handleLogin)
	r.Post("/users", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/movies", s.handleListMovies)
		r.Get("/movies/{title}", s.handleMovieByTitle)
		r.Get("/movies/genres/{name}", s.handleGenre)
		r.Get("/movies/genre/{name}", s.handleGenre)
		r.Get("/movies/directors/{name}", s.handleDirector)

		r.Route("/users/{username}", func(r chi.Router) {
			r.Use(s.requireOwner)
			r.Get("/", s.handleGetUser)
			r.Put("/", s.handleUpdateUser)
			r.Delete("/", s.handleDeleteUser)
			r.Post("/movies/{movieID}", s.handleAddFavorite)
			r.Delete("/movies/{movieID}", s.handleRemoveFavorite)
		})
	})
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Welcome to Cinema Center!"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type loginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginFailure struct {
	Message string     `json:"message"`
	User    *loginUser `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, loginFailure{Message: "Invalid username or password"})
		return
	}

	token, user, err := s.authService.Login(r.Context(), authdomain.Credentials{
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			writeJSON(w, http.StatusBadRequest, loginFailure{Message: "Invalid username or password"})
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("login failed")
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  loginUser{ID: user.ID, Username: user.Username},
		"token": token,
	})
}

type registerRequest struct {
	Username  string  `json:"Username" validate:"required,min=5,alphanum"`
	Password  string  `json:"Password" validate:"required"`
	Email     string  `json:"Email" validate:"required,email"`
	FirstName string  `json:"FirstName" validate:"max=100"`
	LastName  string  `json:"LastName" validate:"max=100"`
	Birthday  *string `json:"Birthday" validate:"omitnil,datetime=2006-01-02"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeBadPayload(w, err)
		return
	}
	if verr := validation.ValidateStruct(&payload); verr != nil {
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
		return
	}

	birthday, err := parseBirthday(payload.Birthday)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := s.authService.Register(r.Context(), authusecase.RegisterInput{
		Username:  payload.Username,
		Password:  payload.Password,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Birthday:  birthday,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrUsernameExists):
			writeError(w, http.StatusConflict, fmt.Sprintf("%s already exists", payload.Username))
		case errors.Is(err, authdomain.ErrPasswordTooLong):
			writeError(w, http.StatusUnprocessableEntity, passwordTooLongMessage)
		case errors.Is(err, authdomain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			logging.Ctx(r.Context()).Error().Err(err).Msg("registration failed")
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := currentUserFromContext(r.Context())
	user, err := s.userService.Get(r.Context(), caller.ID)
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Username  *string `json:"Username" validate:"omitnil,min=5,alphanum"`
	Password  *string `json:"Password" validate:"omitnil,min=1"`
	Email     *string `json:"Email" validate:"omitnil,email"`
	FirstName *string `json:"FirstName" validate:"omitnil,max=100"`
	LastName  *string `json:"LastName" validate:"omitnil,max=100"`
	Birthday  *string `json:"Birthday" validate:"omitnil,datetime=2006-01-02"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := currentUserFromContext(r.Context())

	var payload updateUserRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeBadPayload(w, err)
		return
	}
	if verr := validation.ValidateStruct(&payload); verr != nil {
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
		return
	}

	birthday, err := parseBirthday(payload.Birthday)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := s.userService.Update(r.Context(), caller.ID, userusecase.UpdateInput{
		Username:  payload.Username,
		Password:  payload.Password,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Birthday:  birthday,
	})
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := currentUserFromContext(r.Context())
	if err := s.userService.Delete(r.Context(), caller.ID); err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": caller.Username + " was deleted.",
	})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	caller, _ := currentUserFromContext(r.Context())
	user, err := s.userService.AddFavorite(r.Context(), caller.ID, pathParam(r, "movieID"))
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	caller, _ := currentUserFromContext(r.Context())
	user, err := s.userService.RemoveFavorite(r.Context(), caller.ID, pathParam(r, "movieID"))
	if err != nil {
		s.writeUserError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, authdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, authdomain.ErrUsernameExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, authdomain.ErrPasswordTooLong):
		writeError(w, http.StatusUnprocessableEntity, passwordTooLongMessage)
	case errors.Is(err, authdomain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, moviedomain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("user request failed")
		writeInternalError(w)
	}
}

func writeBadPayload(w http.ResponseWriter, err error) {
	if errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid JSON payload")
}

func parseBirthday(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("Birthday must be a date in %s format", dateLayout)
	}
	return &t, nil
}
