package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/subwayboard/pkg/board"
	"github.com/travigo/subwayboard/pkg/timetable"
)

func DeparturesRouter(router fiber.Router, departureBoard *board.Board) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getDepartures(c, departureBoard)
	})
}

func getDepartures(c *fiber.Ctx, departureBoard *board.Board) error {
	panel := board.PanelConfig{
		Line:      c.Query("line"),
		Station:   c.Query("station"),
		Direction: c.Query("direction"),
	}
	if panel.Line == "" || panel.Station == "" || panel.Direction == "" {
		return errorResponse(c, fiber.StatusBadRequest, "line, station and direction must be provided")
	}

	count, err := getCountQuery(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	panel.Count = board.ClampCount(count)

	override, err := getDayTypeQuery(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	dateTime, err := getDateTimeQuery(c, departureBoard.Location)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	snapshot, err := departureBoard.Refresh(c.UserContext(), board.Request{
		Now:      dateTime,
		Override: override,
		Panels:   []board.PanelConfig{panel},
	})
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "Could not list timetables")
	}

	if resolved := snapshot.Panels[0]; resolved.Status == board.PanelStatusLoadFailed {
		var formatError timetable.DataFormatError

		switch {
		case errors.Is(resolved.Err(), timetable.ErrUnknownStation):
			return errorResponse(c, fiber.StatusNotFound, "Could not find timetable matching line, station and direction")
		case errors.As(resolved.Err(), &formatError):
			return errorResponse(c, fiber.StatusUnprocessableEntity, resolved.Message)
		default:
			return errorResponse(c, fiber.StatusInternalServerError, resolved.Message)
		}
	}

	snapshotReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, snapshot)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "Sherrif could not reduce departure board")
	}

	return c.JSON(snapshotReduced)
}
