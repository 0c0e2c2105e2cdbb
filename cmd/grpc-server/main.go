package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"moviehub/internal/catalog"
	"moviehub/internal/favorites"
	"moviehub/internal/grpcserver"
	"moviehub/internal/logger"
	"moviehub/internal/storage"
	"moviehub/pkg/database"
	"moviehub/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		bootLog := logger.New("grpc-server", "info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New("grpc-server", cfg.LogLevel)

	db, err := database.OpenMigrated(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	kv, err := storage.Open(context.Background(), storage.Options{
		Driver:      cfg.StoreDriver,
		DB:          db,
		PostgresDSN: cfg.PostgresDSN,
		StatePath:   cfg.StatePath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer kv.Close()

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPCAddr).Msg("grpc listen")
	}

	cat := catalog.New(catalog.Options{BaseURL: cfg.CatalogURL, Timeout: cfg.CatalogTimeout})
	// no hub here: the gRPC server runs without subscribers
	svc := grpcserver.NewServer(cat, favorites.NewRegistry(kv, log), nil, cfg.MaxPage, log)

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.UnaryLogger(log)))
	svc.Register(grpcServer)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		grpcServer.GracefulStop()
	}()

	log.Info().Str("addr", cfg.GRPCAddr).Str("store", kv.Backend()).Msg("gRPC server listening")
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatal().Err(err).Msg("grpc server stopped")
	}
}
