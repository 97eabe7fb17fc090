package ctdf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/subwayboard/pkg/util"
)

const YearMonthDayFormat = "2006-01-02"

var ErrInvalidClockTime = errors.New("time must be HH:MM with hour 0-23 and minute 0-59")

// ClockTime is a time of day with no date or timezone attached
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	hourText, minuteText, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || len(hourText) < 1 || len(hourText) > 2 || len(minuteText) != 2 || !isDigits(hourText) || !isDigits(minuteText) {
		return ClockTime{}, fmt.Errorf("%q: %w", s, ErrInvalidClockTime)
	}

	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("%q: %w", s, ErrInvalidClockTime)
	}

	minute, err := strconv.Atoi(minuteText)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%q: %w", s, ErrInvalidClockTime)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func MustParseClockTime(s string) ClockTime {
	clockTime, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}

	return clockTime
}

// OnDate combines the clock time with the calendar date of date in date's location
func (c ClockTime) OnDate(date time.Time) time.Time {
	return util.AddTimeToDate(date, c.Hour, c.Minute)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}
