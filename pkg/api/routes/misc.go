package routes

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/subwayboard/pkg/ctdf"
)

func errorResponse(c *fiber.Ctx, status int, message string) error {
	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

// getDateTimeQuery reads an RFC3339 datetime, falling back to the current time in location
func getDateTimeQuery(c *fiber.Ctx, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.Local
	}

	dateTimeString := c.Query("datetime")
	if dateTimeString == "" {
		return time.Now().In(location), nil
	}

	dateTime, err := time.Parse(time.RFC3339, dateTimeString)
	if err != nil {
		return time.Time{}, errors.New("datetime must be RFC3339")
	}

	return dateTime.In(location), nil
}

func getDayTypeQuery(c *fiber.Ctx) (ctdf.DayType, error) {
	return ctdf.ParseDayType(c.Query("daytype"))
}

func getCountQuery(c *fiber.Ctx) (int, error) {
	countString := c.Query("count")
	if countString == "" {
		return 0, nil
	}

	count, err := strconv.Atoi(countString)
	if err != nil {
		return 0, errors.New("count must be a number")
	}

	return count, nil
}
