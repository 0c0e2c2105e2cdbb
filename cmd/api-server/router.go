package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"moviehub/internal/auth"
	"moviehub/internal/favorites"
	"moviehub/internal/logger"
	"moviehub/internal/movies"
	"moviehub/internal/search"
	"moviehub/internal/settings"
	"moviehub/internal/storage"
	synchub "moviehub/internal/sync"
	"moviehub/pkg/utils"
)

type deps struct {
	cfg     utils.Config
	db      *sql.DB
	kv      storage.KV
	catalog movies.Catalog
	hub     *synchub.Hub
	log     zerolog.Logger
}

func newRouter(d deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.Gin(d.log))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", synchub.WSHandler(d.hub, d.log))
	router.GET("/ws/search", search.WSHandler(d.catalog, d.cfg.SearchQuiet, d.log))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": d.kv.Backend()})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := d.hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := d.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"store":       d.kv.Backend(),
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// Auth
	authCfg := d.cfg.Auth()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(d.db)
	authHandler := auth.NewHandler(authRepo, tokenSvc, d.log)
	authHandler.RegisterRoutes(router.Group("/auth"))

	protected := router.Group("/users")
	protected.Use(auth.Required(tokenSvc, authRepo))
	protected.GET("/me", authHandler.Me)

	// Catalog, favorites and preferences work anonymously; a bearer token
	// switches to the user's own scope.
	public := router.Group("")
	public.Use(auth.Optional(tokenSvc, authRepo))

	favs := favorites.NewRegistry(d.kv, d.log)
	movies.NewHandler(d.catalog, favs, d.cfg.MaxPage, d.log).RegisterRoutes(public)
	favorites.NewHandler(favs, d.catalog, d.hub, d.log).RegisterRoutes(public)
	settings.NewHandler(d.kv, d.hub, d.log).RegisterRoutes(public)

	return router
}
