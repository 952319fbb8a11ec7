package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureProductIndexes backs the tenant-scoped, newest-first catalog listing
// that both the REST list and the live stream re-run on every change.
func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	createdAtIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "appId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("appId_createdAt_desc"),
	}

	_, err := indexes.CreateOne(ctx, createdAtIndex)
	if err != nil {
		log.Warn().Err(err).Msg("EnsureProductIndexes: appId_createdAt_desc")
		return err
	}
	log.Info().Msg("EnsureProductIndexes: appId_createdAt_desc ready")
	return nil
}

func EnsureSaleIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("sales").Indexes()

	dateIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "appId", Value: 1},
			{Key: "date", Value: -1},
		},
		Options: options.Index().SetName("appId_date_desc"),
	}

	_, err := indexes.CreateOne(ctx, dateIndex)
	if err != nil {
		log.Warn().Err(err).Msg("EnsureSaleIndexes: appId_date_desc")
		return err
	}
	return nil
}
