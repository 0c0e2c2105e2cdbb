package movies

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"moviehub/internal/auth"
	"moviehub/internal/catalog"
	"moviehub/internal/favorites"
	"moviehub/pkg/models"
)

// Catalog is the subset of the catalog client the handlers use.
type Catalog interface {
	ListMovies(ctx context.Context, page int) (models.MoviePage, error)
	Movie(ctx context.Context, id models.MovieID) (*models.Movie, error)
	Search(ctx context.Context, q string) ([]models.Movie, error)
	Genres(ctx context.Context) ([]models.Genre, error)
	GenreMovies(ctx context.Context, genreID string, page int) (models.MoviePage, error)
}

var _ Catalog = (*catalog.Client)(nil)

// Routes are the client-side pages a front end can navigate to.
var Routes = []string{"/", "/movie/:id", "/genre/:name/:id", "/login", "/register"}

type Handler struct {
	Catalog   Catalog
	Favorites *favorites.Registry
	MaxPage   int
	log       zerolog.Logger
}

func NewHandler(cat Catalog, favs *favorites.Registry, maxPage int, log zerolog.Logger) *Handler {
	if maxPage < 1 {
		maxPage = DefaultMaxPage
	}
	return &Handler{
		Catalog:   cat,
		Favorites: favs,
		MaxPage:   maxPage,
		log:       log.With().Str("component", "movies").Logger(),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/movies", h.list)
	rg.GET("/movies/:id", h.getByID)
	rg.GET("/genres", h.genres)
	rg.GET("/genre/:name/:id", h.genreMovies)
	rg.GET("/search", h.search)
	rg.GET("/routes", h.routes)
}

// PageView is the JSON shape of a listing page.
type PageView struct {
	Page     int           `json:"page"`
	MaxPage  int           `json:"max_page"`
	HasPrev  bool          `json:"has_prev"`
	HasNext  bool          `json:"has_next"`
	Items    []models.Card `json:"items"`
	Degraded bool          `json:"degraded,omitempty"`
	Genre    string        `json:"genre,omitempty"`
}

func newPageView(p Pager, cards []models.Card) PageView {
	return PageView{
		Page:    p.Page,
		MaxPage: p.Max,
		HasPrev: p.HasPrev(),
		HasNext: p.HasNext(),
		Items:   cards,
	}
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()
	p := Pager{Page: parseInt(c.Query("page"), 1), Max: h.MaxPage}.Clamp()

	res, err := h.Catalog.ListMovies(ctx, p.Page)
	if err != nil {
		h.log.Warn().Err(err).Int("page", p.Page).Msg("list movies")
		v := newPageView(p, []models.Card{})
		v.Degraded = true
		c.JSON(http.StatusOK, v)
		return
	}
	c.JSON(http.StatusOK, newPageView(p, h.cards(c, res.Movies)))
}

func (h *Handler) getByID(c *gin.Context) {
	id := models.MovieID(strings.TrimSpace(c.Param("id")))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	m, err := h.Catalog.Movie(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		h.log.Warn().Err(err).Str("movie_id", id.String()).Msg("get movie")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load movie details"})
		return
	}
	c.JSON(http.StatusOK, models.NewDetailCard(*m, h.isFavorite(c, m.ID)))
}

func (h *Handler) genres(c *gin.Context) {
	gs, err := h.Catalog.Genres(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("list genres")
		gs = []models.Genre{}
	}
	c.JSON(http.StatusOK, gin.H{"items": gs})
}

func (h *Handler) genreMovies(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	genreID := strings.TrimSpace(c.Param("id"))
	page := max(parseInt(c.Query("page"), 1), 1)

	res, err := h.Catalog.GenreMovies(ctx, genreID, page)
	if err != nil {
		h.log.Warn().Err(err).Str("genre_id", genreID).Int("page", page).Msg("list genre")
		v := newPageView(Pager{Page: page, Max: page}, []models.Card{})
		v.Degraded = true
		v.Genre = name
		c.JSON(http.StatusOK, v)
		return
	}

	last := max(int(res.Metadata.PageCount), page)
	v := newPageView(Pager{Page: page, Max: last}, h.cards(c, res.Movies))
	v.Genre = name
	c.JSON(http.StatusOK, v)
}

// search is the one-shot, non-debounced form of the search box.
func (h *Handler) search(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		c.JSON(http.StatusOK, gin.H{"q": q, "items": []models.Card{}})
		return
	}

	res, err := h.Catalog.Search(c.Request.Context(), q)
	if err != nil {
		h.log.Debug().Err(err).Msg("search")
		res = nil
	}
	c.JSON(http.StatusOK, gin.H{"q": q, "items": h.cards(c, res)})
}

func (h *Handler) routes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": Routes})
}

func (h *Handler) favoriteSet(c *gin.Context) favorites.Set {
	if h.Favorites == nil {
		return favorites.Set{}
	}
	return h.Favorites.For(c.Request.Context(), auth.UserID(c)).Snapshot()
}

func (h *Handler) isFavorite(c *gin.Context, id models.MovieID) bool {
	return favorites.IsFavorite(h.favoriteSet(c), id)
}

func (h *Handler) cards(c *gin.Context, movies []models.Movie) []models.Card {
	set := h.favoriteSet(c)
	out := make([]models.Card, 0, len(movies))
	for _, m := range movies {
		out = append(out, models.NewCard(m, favorites.IsFavorite(set, m.ID)))
	}
	return out
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
