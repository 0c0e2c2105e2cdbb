package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/catalog"
	"moviehub/internal/logger"
	"moviehub/internal/storage"
	synchub "moviehub/internal/sync"
	"moviehub/pkg/database"
	"moviehub/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		bootLog := logger.New("api-server", "info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New("api-server", cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	db, err := database.OpenMigrated(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()

	ctx := context.Background()
	kv, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.StoreDriver,
		DB:          db,
		PostgresDSN: cfg.PostgresDSN,
		StatePath:   cfg.StatePath,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open store")
	}
	defer kv.Close()

	// Start TCP sync first so binding errors show up early
	hub := synchub.NewHub()
	tcpSrv := synchub.NewServer(cfg.SyncAddr, hub, log)

	router := newRouter(deps{
		cfg:     cfg,
		db:      db,
		kv:      kv,
		catalog: catalog.New(catalog.Options{BaseURL: cfg.CatalogURL, Timeout: cfg.CatalogTimeout}),
		hub:     hub,
		log:     log,
	})

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("store", kv.Backend()).
			Str("catalog", cfg.CatalogURL).
			Msg("HTTP API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	log.Info().Msg("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := tcpSrv.Close(); err != nil {
		log.Error().Err(err).Msg("tcp shutdown")
	}
	hub.CloseAll()

	wg.Wait()
	log.Info().Msg("servers stopped")
}
