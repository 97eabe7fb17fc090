package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes(ctx context.Context) {
	createTimetableIndexes(ctx)
}

func createTimetableIndexes(ctx context.Context) {
	timetableCollection := GetCollection(TimetableEntriesCollection)
	timetableIndex := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "source", Value: 1},
				{Key: "sequence", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "key.line", Value: 1},
				{Key: "key.station", Value: 1},
				{Key: "key.direction", Value: 1},
			},
		},
	}

	opts := options.CreateIndexes()
	_, err := timetableCollection.Indexes().CreateMany(ctx, timetableIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
