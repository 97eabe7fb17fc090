package specialdays

import (
	"errors"
	"fmt"
	"time"

	"github.com/travigo/subwayboard/pkg/ctdf"
)

var ErrYearNotLoaded = errors.New("no holiday data for year")

// Calendar is a set of named public holidays keyed by year then YYYY-MM-DD date
type Calendar struct {
	days map[int]map[string]string
}

func NewCalendar() *Calendar {
	return &Calendar{days: map[int]map[string]string{}}
}

func (c *Calendar) Add(date time.Time, name string) {
	if c.days == nil {
		c.days = map[int]map[string]string{}
	}

	year := date.Year()
	if c.days[year] == nil {
		c.days[year] = map[string]string{}
	}

	c.days[year][date.Format(ctdf.YearMonthDayFormat)] = name
}

// IsHoliday reports whether the calendar date of date is a holiday. Dates in a year the calendar knows
// nothing about return ErrYearNotLoaded.
func (c *Calendar) IsHoliday(date time.Time) (bool, error) {
	_, isHoliday, err := c.lookup(date)

	return isHoliday, err
}

func (c *Calendar) Name(date time.Time) (string, error) {
	name, _, err := c.lookup(date)

	return name, err
}

func (c *Calendar) Years() int {
	return len(c.days)
}

func (c *Calendar) Len() int {
	count := 0
	for _, days := range c.days {
		count += len(days)
	}

	return count
}

func (c *Calendar) lookup(date time.Time) (string, bool, error) {
	if c == nil {
		return "", false, fmt.Errorf("%d: %w", date.Year(), ErrYearNotLoaded)
	}

	days, exists := c.days[date.Year()]
	if !exists {
		return "", false, fmt.Errorf("%d: %w", date.Year(), ErrYearNotLoaded)
	}

	name, isHoliday := days[date.Format(ctdf.YearMonthDayFormat)]

	return name, isHoliday, nil
}
