package settings

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"moviehub/internal/auth"
	hubsync "moviehub/internal/sync"
	"moviehub/internal/storage"
)

type Handler struct {
	KV  storage.KV
	Hub hubsync.Broadcaster
	log zerolog.Logger

	// serializes read-modify-write on toggle
	mu sync.Mutex
}

func NewHandler(kv storage.KV, hub hubsync.Broadcaster, log zerolog.Logger) *Handler {
	return &Handler{KV: kv, Hub: hub, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings/theme", h.get)
	rg.PUT("/settings/theme", h.put)
	rg.POST("/settings/theme/toggle", h.toggle)
}

type themeReq struct {
	DarkMode *bool `json:"dark_mode"`
}

func (h *Handler) get(c *gin.Context) {
	key := DarkModeKey(auth.UserID(c))
	c.JSON(http.StatusOK, gin.H{"dark_mode": DarkMode(c.Request.Context(), h.KV, key)})
}

func (h *Handler) put(c *gin.Context) {
	var req themeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.DarkMode == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dark_mode (bool) required"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.save(c, *req.DarkMode)
}

func (h *Handler) toggle(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := DarkModeKey(auth.UserID(c))
	h.save(c, !DarkMode(c.Request.Context(), h.KV, key))
}

func (h *Handler) save(c *gin.Context, on bool) {
	userID := auth.UserID(c)
	if err := SetDarkMode(c.Request.Context(), h.KV, DarkModeKey(userID), on); err != nil {
		h.log.Error().Err(err).Msg("save theme")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		go h.Hub.BroadcastJSON(hubsync.ThemeEvent{
			Type:     hubsync.EventTheme,
			UserID:   userID,
			DarkMode: on,
			At:       time.Now().UTC(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"dark_mode": on})
}
