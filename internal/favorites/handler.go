package favorites

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"moviehub/internal/auth"
	"moviehub/internal/sync"
	"moviehub/pkg/models"
)

// MovieGetter resolves favorite ids to catalog records for ?expand=true.
type MovieGetter interface {
	Movie(ctx context.Context, id models.MovieID) (*models.Movie, error)
}

type Handler struct {
	Stores  *Registry
	Catalog MovieGetter
	Hub     sync.Broadcaster
	log     zerolog.Logger
}

func NewHandler(stores *Registry, catalog MovieGetter, hub sync.Broadcaster, log zerolog.Logger) *Handler {
	return &Handler{Stores: stores, Catalog: catalog, Hub: hub, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.list)
	rg.GET("/favorites/:id", h.getOne)
	rg.POST("/favorites/:id/toggle", h.toggle)
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()
	set := h.Stores.For(ctx, auth.UserID(c)).Snapshot()

	resp := gin.H{
		"ids":   set.Strings(),
		"count": set.Len(),
	}
	if c.Query("expand") == "true" && h.Catalog != nil {
		resp["items"] = h.expand(ctx, set)
	}
	c.JSON(http.StatusOK, resp)
}

// expand fetches each favorite; ids the catalog cannot resolve are skipped.
func (h *Handler) expand(ctx context.Context, set Set) []models.Card {
	cards := make([]models.Card, 0, set.Len())
	for _, id := range set.IDs() {
		m, err := h.Catalog.Movie(ctx, id)
		if err != nil || m == nil {
			h.log.Debug().Err(err).Str("movie_id", id.String()).Msg("favorite lookup skipped")
			continue
		}
		cards = append(cards, models.NewCard(*m, true))
	}
	return cards
}

func (h *Handler) getOne(c *gin.Context) {
	id := models.MovieID(strings.TrimSpace(c.Param("id")))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	store := h.Stores.For(c.Request.Context(), auth.UserID(c))
	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"favorite": store.Contains(id),
	})
}

func (h *Handler) toggle(c *gin.Context) {
	id := models.MovieID(strings.TrimSpace(c.Param("id")))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	userID := auth.UserID(c)
	set, fav := h.Stores.For(c.Request.Context(), userID).Toggle(c.Request.Context(), id)

	if h.Hub != nil {
		ev := sync.FavoriteEvent{
			Type:    sync.EventFavoriteRemoved,
			UserID:  userID,
			MovieID: id.String(),
			Count:   set.Len(),
			At:      time.Now().UTC(),
		}
		if fav {
			ev.Type = sync.EventFavoriteAdded
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"favorite": fav,
		"ids":      set.Strings(),
		"count":    set.Len(),
	})
}
