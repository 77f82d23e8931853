package httpserver

import (
	"errors"
	"net/http"

	moviedomain "cinemacenter/backend/internal/domain/movie"
	"cinemacenter/backend/internal/logging"
)

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.movieService.List(r.Context())
	if err != nil {
		s.writeMovieError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

func (s *Server) handleMovieByTitle(w http.ResponseWriter, r *http.Request) {
	movie, err := s.movieService.GetByTitle(r.Context(), pathParam(r, "title"))
	if err != nil {
		s.writeMovieError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (s *Server) handleGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := s.movieService.Genre(r.Context(), pathParam(r, "name"))
	if err != nil {
		s.writeMovieError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

func (s *Server) handleDirector(w http.ResponseWriter, r *http.Request) {
	director, err := s.movieService.Director(r.Context(), pathParam(r, "name"))
	if err != nil {
		s.writeMovieError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, director)
}

func (s *Server) writeMovieError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, moviedomain.ErrNotFound),
		errors.Is(err, moviedomain.ErrGenreNotFound),
		errors.Is(err, moviedomain.ErrDirectorNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("catalog request failed")
		writeInternalError(w)
	}
}
