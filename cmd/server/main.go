package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/denizak/lootledger/internal/api"
	"github.com/denizak/lootledger/internal/auth"
	"github.com/denizak/lootledger/internal/config"
	"github.com/denizak/lootledger/internal/storage/sqlite"
	"github.com/denizak/lootledger/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	if err := authenticator.SeedAdmin(context.Background(), cfg.AdminUser, cfg.AdminPassword); err != nil {
		slog.Error("Failed to seed admin account", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	handler := api.NewRouter(store, authenticator, jwtManager)

	// h2c serves HTTP/2 without TLS for clients that speak it; plain
	// HTTP/1.1 keeps working.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
