package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/board"
	"github.com/travigo/subwayboard/pkg/config"
	"github.com/travigo/subwayboard/pkg/metrics"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the departure board web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					collector := metrics.NewCollector()

					departureBoard, err := board.Setup(c.Context, cfg, collector)
					if err != nil {
						return err
					}

					board.ReloadOnHangup(c.Context, departureBoard.Store)

					log.Info().Str("listen", c.String("listen")).Msg("Starting web API")

					return SetupServer(c.String("listen"), departureBoard, collector)
				},
			},
		},
	}
}
