package events

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/config"
	"github.com/travigo/subwayboard/pkg/consumer"
	"github.com/travigo/subwayboard/pkg/ctdf"
	"github.com/travigo/subwayboard/pkg/metrics"
	"github.com/travigo/subwayboard/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the board events consumer",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run events consumer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen target for the queue stats server, empty to disable",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if err := redis_client.Connect(c.Context, cfg.Redis); err != nil {
						return err
					}

					collector := metrics.NewCollector()
					handler := func(event *ReceivedEvent) error {
						collector.EventConsumed()
						return LogEvent(event)
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: NumberConsumers,
						BatchSize:       BatchSize,
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(handler),
						StatsListen:     c.String("stats-listen"),
						Metrics:         collector.Handler(),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:  "test-event",
				Usage: "publish a test board event",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if err := redis_client.Connect(c.Context, cfg.Redis); err != nil {
						return err
					}

					publisher, err := NewPublisher(redis_client.QueueConnection)
					if err != nil {
						return err
					}

					event := &ctdf.Event{
						Type:      ctdf.EventTypeDepartureBoardRefreshed,
						Timestamp: time.Now(),
						Body:      json.RawMessage(`{"Panels":[]}`),
					}

					if err := publisher.Publish(event); err != nil {
						return err
					}

					log.Info().Str("queue", QueueName).Msg("Published test event")

					return nil
				},
			},
		},
	}
}
