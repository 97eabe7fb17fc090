package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const DefaultMongoConnectionString = "mongodb://localhost:27017/"
const DefaultMongoDatabase = "subwayboard"

const TimetableEntriesCollection = "timetable_entries"

func ConnectMongoDB(ctx context.Context, connectionString string, dbName string) error {
	if connectionString == "" {
		connectionString = DefaultMongoConnectionString
	}
	if dbName == "" {
		dbName = DefaultMongoDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("pinging mongodb: %w", err)
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")

	createIndexes(ctx)

	return nil
}

func Disconnect(ctx context.Context) error {
	if MongoGlobalInstance == nil {
		return nil
	}

	return MongoGlobalInstance.Client.Disconnect(ctx)
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
