package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/api"
	"github.com/travigo/subwayboard/pkg/board"
	"github.com/travigo/subwayboard/pkg/dataimporter"
	"github.com/travigo/subwayboard/pkg/events"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("TRAVIGO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRAVIGO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "subwayboard",
		Description: "Next departures board for the Sapporo subway",

		Commands: []*cli.Command{
			board.RegisterCLI(),
			board.RegisterStationsCLI(),
			api.RegisterCLI(),
			events.RegisterCLI(),
			dataimporter.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
