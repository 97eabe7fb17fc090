package ctdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/util"
)

type DayType string

const (
	DayTypeWeekday          DayType = "weekday"
	DayTypeWeekendOrHoliday DayType = "weekend_holiday"

	// DayTypeAuto is only valid as an override and means the day type is worked out from the date
	DayTypeAuto DayType = "auto"
)

// LateNightCutoffHour is the first hour of a new service day. Departures before it still run
// on the previous calendar date's timetable.
const LateNightCutoffHour = 5

func ParseDayType(s string) (DayType, error) {
	switch DayType(strings.ToLower(strings.TrimSpace(s))) {
	case "", DayTypeAuto:
		return DayTypeAuto, nil
	case DayTypeWeekday:
		return DayTypeWeekday, nil
	case DayTypeWeekendOrHoliday:
		return DayTypeWeekendOrHoliday, nil
	default:
		return "", fmt.Errorf("unknown day type %q, expected auto, weekday or weekend_holiday", s)
	}
}

func (d DayType) IsOverride() bool {
	return d == DayTypeWeekday || d == DayTypeWeekendOrHoliday
}

func (d DayType) Label() string {
	switch d {
	case DayTypeWeekday:
		return "平日"
	case DayTypeWeekendOrHoliday:
		return "土日祝"
	default:
		return string(d)
	}
}

// HolidayLookup reports whether a calendar date is a public holiday
type HolidayLookup interface {
	IsHoliday(date time.Time) (bool, error)
}

// EffectiveServiceDate returns local midnight of the date whose timetable governs now.
// Hours before cutoffHour belong to the previous date. Cutoffs outside 0-23 use LateNightCutoffHour.
func EffectiveServiceDate(now time.Time, cutoffHour int) time.Time {
	if cutoffHour < 0 || cutoffHour > 23 {
		cutoffHour = LateNightCutoffHour
	}

	serviceDate := util.StartOfDay(now)
	if now.Hour() < cutoffHour {
		serviceDate = serviceDate.AddDate(0, 0, -1)
	}

	return serviceDate
}

func IsWeekendOrHoliday(date time.Time, holidays HolidayLookup) bool {
	if weekday := date.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		return true
	}

	if holidays == nil {
		return false
	}

	isHoliday, err := holidays.IsHoliday(date)
	if err != nil {
		log.Debug().Err(err).Str("date", date.Format(YearMonthDayFormat)).Msg("Holiday lookup failed, using weekend only")
		return false
	}

	return isHoliday
}

// EffectiveDayType picks the timetable day type for now. A weekday or weekend_holiday override always wins.
func EffectiveDayType(now time.Time, override DayType, holidays HolidayLookup, cutoffHour int) DayType {
	if override.IsOverride() {
		return override
	}

	if IsWeekendOrHoliday(EffectiveServiceDate(now, cutoffHour), holidays) {
		return DayTypeWeekendOrHoliday
	}

	return DayTypeWeekday
}
