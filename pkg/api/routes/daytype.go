package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/subwayboard/pkg/board"
	"github.com/travigo/subwayboard/pkg/ctdf"
)

func DayTypeRouter(router fiber.Router, departureBoard *board.Board) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getDayType(c, departureBoard)
	})
}

func getDayType(c *fiber.Ctx, departureBoard *board.Board) error {
	override, err := getDayTypeQuery(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	dateTime, err := getDateTimeQuery(c, departureBoard.Location)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	autoDayType := ctdf.EffectiveDayType(dateTime, ctdf.DayTypeAuto, departureBoard.Holidays, departureBoard.CutoffHour)
	dayType := ctdf.EffectiveDayType(dateTime, override, departureBoard.Holidays, departureBoard.CutoffHour)

	return c.JSON(fiber.Map{
		"datetime":    dateTime,
		"servicedate": ctdf.EffectiveServiceDate(dateTime, departureBoard.CutoffHour).Format(ctdf.YearMonthDayFormat),
		"override":    override,
		"daytype":     dayType,
		"autodaytype": autoDayType,
		"label":       dayType.Label(),
	})
}
