package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/subwayboard/pkg/timetable"
)

type stationDirections struct {
	Station    string
	Directions []string
}

type lineStations struct {
	Line     string
	Stations []stationDirections
}

func StationsRouter(router fiber.Router, store *timetable.Store) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listStations(c, store)
	})
}

func listStations(c *fiber.Ctx, store *timetable.Store) error {
	catalog, err := store.Catalog(c.UserContext())
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "Could not list timetables")
	}

	lines := []lineStations{}
	for _, line := range catalog.Lines() {
		entry := lineStations{Line: line}

		for _, station := range catalog.Stations(line) {
			entry.Stations = append(entry.Stations, stationDirections{
				Station:    station,
				Directions: catalog.Directions(line, station),
			})
		}

		lines = append(lines, entry)
	}

	return c.JSON(fiber.Map{
		"lines": lines,
	})
}
