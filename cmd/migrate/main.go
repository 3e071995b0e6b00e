package main

import (
	"flag"
	"log/slog"
	"os"

	"roombook/internal/infra/db"
	"roombook/internal/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(*source, cfg.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied")
}
