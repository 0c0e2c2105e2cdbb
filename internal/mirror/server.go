package mirror

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Prefix is where the API lives, matching the remote base URL path.
const Prefix = "/api/v1"

type Server struct {
	ds     Dataset
	router chi.Router
}

// New builds the router. quiet drops request logging (tests).
func New(ds Dataset, quiet bool) *Server {
	s := &Server{ds: ds}

	r := chi.NewRouter()
	if !quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Route(Prefix, func(r chi.Router) {
		r.Get("/movies", s.handleMovies)
		r.Get("/movies/{id}", s.handleMovie)
		r.Get("/genres", s.handleGenres)
		r.Get("/genres/{id}/movies", s.handleGenreMovies)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "movies": len(s.ds.Movies)})
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	movies := s.ds.Movies
	if q := r.URL.Query().Get("q"); strings.TrimSpace(q) != "" {
		movies = s.ds.filter(titleContains(q))
	}
	writeJSON(w, http.StatusOK, paginate(movies, page))
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	m, ok := s.ds.movie(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "movie not found"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ds.Genres)
}

func (s *Server) handleGenreMovies(w http.ResponseWriter, r *http.Request) {
	g, ok := s.ds.genre(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "genre not found"})
		return
	}
	writeJSON(w, http.StatusOK, paginate(s.ds.filter(hasGenre(g.Name)), pageParam(r)))
}

func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
