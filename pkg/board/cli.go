package board

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/config"
	"github.com/travigo/subwayboard/pkg/events"
	"github.com/travigo/subwayboard/pkg/metrics"
	"github.com/travigo/subwayboard/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Show the next departures board in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "layout",
				Usage: "board layout YAML file",
			},
			&cli.StringFlag{
				Name:  "line",
				Usage: "line of a single panel board",
			},
			&cli.StringFlag{
				Name:  "station",
				Usage: "station of a single panel board",
			},
			&cli.StringFlag{
				Name:  "direction",
				Usage: "direction of a single panel board",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "departures per panel (1-5)",
			},
			&cli.StringFlag{
				Name:  "daytype",
				Usage: "auto, weekday or weekend_holiday",
			},
			&cli.DurationFlag{
				Name:  "refresh",
				Value: DefaultRefresh,
				Usage: "refresh interval, 0 to show the board once",
			},
			&cli.TimestampFlag{
				Name:   "now",
				Layout: time.RFC3339,
				Usage:  "fixed starting time instead of the clock",
			},
			&cli.BoolFlag{
				Name:  "publish",
				Usage: "publish every refresh to the events queue",
			},
			&cli.StringFlag{
				Name:  "metrics-listen",
				Usage: "serve prometheus metrics on this address, e.g. :9090",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			layout, err := layoutFromFlags(c)
			if err != nil {
				return err
			}
			applyLayout(cfg, layout)

			if log.Logger.GetLevel() <= zerolog.DebugLevel {
				pretty.Println(layout)
			}

			var collector *metrics.Collector
			if listen := c.String("metrics-listen"); listen != "" {
				collector = metrics.NewCollector()
				go serveMetrics(listen, collector)
			}

			departureBoard, err := Setup(c.Context, cfg, collector)
			if err != nil {
				return err
			}

			publish, err := snapshotPublisher(c, cfg, collector)
			if err != nil {
				return err
			}

			request := Request{
				Override: layout.Override(),
				Panels:   layout.Panels,
			}
			if now := c.Timestamp("now"); now != nil {
				request.Now = *now
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if layout.Refresh > 0 {
				ReloadOnHangup(ctx, departureBoard.Store)
			}

			return departureBoard.Run(ctx, layout.Refresh, request, func(snapshot *Snapshot) {
				if layout.Refresh > 0 {
					fmt.Fprint(c.App.Writer, "\033[H\033[2J")
				}
				if err := Render(c.App.Writer, snapshot); err != nil {
					log.Error().Err(err).Msg("Failed to render board")
				}
				publish(snapshot)
			})
		},
	}
}

func RegisterStationsCLI() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "List the lines, stations and directions with timetables",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := cfg.NewStore(c.Context, nil)
			if err != nil {
				return err
			}

			catalog, err := store.Catalog(c.Context)
			if err != nil {
				return err
			}

			if len(catalog.Keys) == 0 {
				return fmt.Errorf("no timetables found, place files like %s/南北線_麻生_真駒内方面.csv", cfg.TimetableDir)
			}

			for _, line := range catalog.Lines() {
				fmt.Fprintln(c.App.Writer, line)
				for _, station := range catalog.Stations(line) {
					for _, direction := range catalog.Directions(line, station) {
						fmt.Fprintf(c.App.Writer, "  %s  %s\n", station, direction)
					}
				}
			}

			return nil
		},
	}
}

func layoutFromFlags(c *cli.Context) (*Layout, error) {
	var layout *Layout

	if path := c.String("layout"); path != "" {
		var err error
		if layout, err = LoadLayout(path); err != nil {
			return nil, err
		}
	} else {
		layout = &Layout{
			Panels: []PanelConfig{{
				Line:      c.String("line"),
				Station:   c.String("station"),
				Direction: c.String("direction"),
			}},
		}
	}

	if c.IsSet("count") {
		layout.Count = c.Int("count")
		for i := range layout.Panels {
			layout.Panels[i].Count = 0
		}
	}
	if c.IsSet("daytype") {
		layout.DayType = c.String("daytype")
	}
	if c.IsSet("refresh") || layout.Refresh == 0 {
		layout.Refresh = c.Duration("refresh")
	}

	if err := layout.Normalise(); err != nil {
		if errors.Is(err, ErrNoPanels) {
			return nil, errors.New("pass --layout or --line, --station and --direction")
		}
		return nil, err
	}

	return layout, nil
}

func applyLayout(cfg *config.Config, layout *Layout) {
	if layout.Timezone != "" {
		if location, err := time.LoadLocation(layout.Timezone); err == nil {
			cfg.Location = location
		}
	}
	if layout.CutoffHour != nil {
		cfg.CutoffHour = *layout.CutoffHour
	}
}

func serveMetrics(listen string, collector *metrics.Collector) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	log.Info().Msgf("Metrics listening on http://%s/metrics", listen)
	if err := http.ListenAndServe(listen, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Metrics server stopped")
	}
}

// snapshotPublisher returns a no-op unless --publish is set. collector may be nil.
func snapshotPublisher(c *cli.Context, cfg *config.Config, collector *metrics.Collector) (func(*Snapshot), error) {
	if !c.Bool("publish") {
		return func(*Snapshot) {}, nil
	}

	if err := redis_client.Connect(c.Context, cfg.Redis); err != nil {
		return nil, err
	}

	return newSnapshotPublisher(redis_client.QueueConnection, collector)
}

func newSnapshotPublisher(connection rmq.Connection, collector *metrics.Collector) (func(*Snapshot), error) {
	publisher, err := events.NewPublisher(connection)
	if err != nil {
		return nil, err
	}
	if collector != nil {
		publisher.Observer = collector
	}

	return func(snapshot *Snapshot) {
		if err := publisher.Publish(snapshot.Event()); err != nil {
			log.Error().Err(err).Msg("Failed to publish board event")
		}
	}, nil
}

