package redis_client

import (
	"context"
	"fmt"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const DefaultConnectionAddress = "localhost:6379"

const queueConnectionTag = "subwayboard"

type Options struct {
	Address  string
	Password string
	Database int
}

func Connect(ctx context.Context, options Options) error {
	if options.Address == "" {
		options.Address = DefaultConnectionAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       options.Database,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("connecting to redis at %s: %w", options.Address, err)
	}
	Client = client

	var err error
	QueueConnection, err = rmq.OpenConnectionWithRedisClient(queueConnectionTag, Client, nil)
	if err != nil {
		return fmt.Errorf("opening queue connection: %w", err)
	}

	log.Info().Str("address", options.Address).Int("database", options.Database).Msg("Connected to Redis")

	return nil
}

func Close() error {
	if Client == nil {
		return nil
	}

	if QueueConnection != nil {
		<-QueueConnection.StopAllConsuming()
	}

	return Client.Close()
}
