// Command migrate-products backfills the status field on catalog records
// created before the field existed. Records that already carry a status are
// left untouched, so re-running it is safe.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"modaai/internal/catalog"
	"modaai/internal/config"
	"modaai/internal/database"
	"modaai/internal/models"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	config.Load()
	cfg := config.AppEnv

	if cfg.MongoURI == "" {
		zlog.Error().Msg("MONGO_URI is required")
		os.Exit(1)
	}

	fmt.Println("Starting migration: adding status field to existing products...")

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		zlog.Error().Err(err).Msg("failed to connect to MongoDB")
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	store := catalog.NewStore(client.Database(cfg.DBName), cfg.AppID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, skipped, err := store.BackfillStatus(ctx, models.StatusPublished)
	if err != nil {
		zlog.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}

	fmt.Println("Migration complete!")
	fmt.Printf("  - Updated: %d products\n", updated)
	fmt.Printf("  - Skipped: %d products\n", skipped)
}
