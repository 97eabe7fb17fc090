package dataimporter

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/config"
	"github.com/travigo/subwayboard/pkg/database"
	"github.com/travigo/subwayboard/pkg/timetable"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Import timetable files into MongoDB",
		Subcommands: []*cli.Command{
			{
				Name:  "csv",
				Usage: "Import a directory of timetable CSV files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "directory of line_station_direction.csv files, defaults to TRAVIGO_TIMETABLE_DIR",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					dir := c.String("dir")
					if dir == "" {
						dir = cfg.TimetableDir
					}

					if err := database.ConnectMongoDB(c.Context, cfg.MongoConnection, cfg.MongoDatabase); err != nil {
						return err
					}
					defer database.Disconnect(c.Context)

					importer := &Importer{Collection: database.GetCollection(database.TimetableEntriesCollection)}

					result, err := importer.Import(c.Context, timetable.NewDirectorySource(dir))
					if err != nil {
						return err
					}

					log.Info().
						Int("sources", result.Sources).
						Int("rows", result.Rows).
						Strs("failed", result.Failed).
						Msg("Imported timetables")

					return nil
				},
			},
		},
	}
}
