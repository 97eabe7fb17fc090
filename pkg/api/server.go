package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/travigo/subwayboard/pkg/api/routes"
	"github.com/travigo/subwayboard/pkg/board"
	"github.com/travigo/subwayboard/pkg/metrics"
)

func NewApp(departureBoard *board.Board, collector *metrics.Collector) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), departureBoard.Store)
	routes.DeparturesRouter(group.Group("/departures"), departureBoard)
	routes.DayTypeRouter(group.Group("/daytype"), departureBoard)

	if collector != nil {
		webApp.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))
	}

	return webApp
}

func SetupServer(listen string, departureBoard *board.Board, collector *metrics.Collector) error {
	return NewApp(departureBoard, collector).Listen(listen)
}
