package main

import (
	"log"
	"os"

	"github.com/Pasindu991182/food-delivery-system/internal/api"
	"github.com/Pasindu991182/food-delivery-system/internal/config"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
	"github.com/Pasindu991182/food-delivery-system/internal/tracking"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("fooddelivery: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"allowed_origins", cfg.AllowedOrigins,
	)

	db, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	srv := api.NewServer(cfg.ListenAddr, db, tracking.NewBroker(), logger,
		api.WithAllowedOrigins(cfg.AllowedOrigins),
		api.WithBcryptCost(cfg.BcryptCost),
	)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
