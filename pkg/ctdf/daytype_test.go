package ctdf

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type holidaySet map[string]bool

func (h holidaySet) IsHoliday(date time.Time) (bool, error) {
	return h[date.Format(YearMonthDayFormat)], nil
}

type failingLookup struct{}

func (failingLookup) IsHoliday(time.Time) (bool, error) {
	return false, errors.New("holiday service unavailable")
}

func TestEffectiveServiceDate(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		cutoff   int
		expected time.Time
	}{
		{"friday late evening", at(2026, 1, 16, 23, 0, 0), LateNightCutoffHour, at(2026, 1, 16, 0, 0, 0)},
		{"saturday early morning", at(2026, 1, 17, 2, 0, 0), LateNightCutoffHour, at(2026, 1, 16, 0, 0, 0)},
		{"just before cutoff", at(2026, 1, 17, 4, 59, 59), LateNightCutoffHour, at(2026, 1, 16, 0, 0, 0)},
		{"at cutoff", at(2026, 1, 17, 5, 0, 0), LateNightCutoffHour, at(2026, 1, 17, 0, 0, 0)},
		{"midnight", at(2026, 1, 17, 0, 0, 0), LateNightCutoffHour, at(2026, 1, 16, 0, 0, 0)},
		{"year boundary", at(2026, 1, 1, 1, 0, 0), LateNightCutoffHour, at(2025, 12, 31, 0, 0, 0)},
		{"cutoff of one hour", at(2026, 1, 17, 2, 0, 0), 1, at(2026, 1, 17, 0, 0, 0)},
		{"cutoff of one hour after midnight", at(2026, 1, 17, 0, 30, 0), 1, at(2026, 1, 16, 0, 0, 0)},
		{"no late night window", at(2026, 1, 17, 0, 30, 0), 0, at(2026, 1, 17, 0, 0, 0)},
		{"invalid cutoff uses default", at(2026, 1, 17, 3, 0, 0), 42, at(2026, 1, 16, 0, 0, 0)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, EffectiveServiceDate(test.now, test.cutoff))
		})
	}
}

func TestEffectiveDayTypeLateNightBelongsToPreviousDay(t *testing.T) {
	// 2026-01-16 is a Friday
	assert.Equal(t, DayTypeWeekday, EffectiveDayType(at(2026, 1, 16, 23, 0, 0), DayTypeAuto, nil, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekday, EffectiveDayType(at(2026, 1, 17, 2, 0, 0), DayTypeAuto, nil, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekendOrHoliday, EffectiveDayType(at(2026, 1, 17, 5, 0, 0), DayTypeAuto, nil, LateNightCutoffHour))

	// Sunday night into Monday morning stays on the weekend timetable until the cutoff
	assert.Equal(t, DayTypeWeekendOrHoliday, EffectiveDayType(at(2026, 1, 19, 0, 20, 0), DayTypeAuto, nil, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekday, EffectiveDayType(at(2026, 1, 19, 6, 0, 0), DayTypeAuto, nil, LateNightCutoffHour))
}

func TestEffectiveDayTypeWeekendRegardlessOfLookup(t *testing.T) {
	lookups := map[string]HolidayLookup{
		"none":    nil,
		"empty":   holidaySet{},
		"failing": failingLookup{},
	}

	for name, lookup := range lookups {
		for day := 17; day <= 18; day++ {
			now := at(2026, 1, day, 12, 0, 0)
			assert.Equal(t, DayTypeWeekendOrHoliday, EffectiveDayType(now, DayTypeAuto, lookup, LateNightCutoffHour), "%s %s", name, now.Weekday())
		}
	}
}

func TestEffectiveDayTypeHolidays(t *testing.T) {
	holidays := holidaySet{"2026-01-12": true}

	// Coming of Age Day, a Monday
	assert.Equal(t, DayTypeWeekendOrHoliday, EffectiveDayType(at(2026, 1, 12, 9, 0, 0), DayTypeAuto, holidays, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekendOrHoliday, EffectiveDayType(at(2026, 1, 13, 0, 15, 0), DayTypeAuto, holidays, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekday, EffectiveDayType(at(2026, 1, 13, 9, 0, 0), DayTypeAuto, holidays, LateNightCutoffHour))

	// Without a working lookup the holiday degrades to its plain weekday
	assert.Equal(t, DayTypeWeekday, EffectiveDayType(at(2026, 1, 12, 9, 0, 0), DayTypeAuto, failingLookup{}, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekday, EffectiveDayType(at(2026, 1, 12, 9, 0, 0), DayTypeAuto, nil, LateNightCutoffHour))
}

func TestEffectiveDayTypeOverride(t *testing.T) {
	sunday := at(2026, 1, 18, 12, 0, 0)
	tuesday := at(2026, 1, 13, 12, 0, 0)

	assert.Equal(t, DayTypeWeekday, EffectiveDayType(sunday, DayTypeWeekday, nil, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekendOrHoliday, EffectiveDayType(tuesday, DayTypeWeekendOrHoliday, nil, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekendOrHoliday, EffectiveDayType(sunday, DayTypeAuto, nil, LateNightCutoffHour))
	assert.Equal(t, DayTypeWeekday, EffectiveDayType(tuesday, "", nil, LateNightCutoffHour))
}

func TestParseDayType(t *testing.T) {
	for input, expected := range map[string]DayType{
		"":                DayTypeAuto,
		"auto":            DayTypeAuto,
		"Weekday":         DayTypeWeekday,
		"weekend_holiday": DayTypeWeekendOrHoliday,
	} {
		parsed, err := ParseDayType(input)
		require.NoError(t, err)
		assert.Equal(t, expected, parsed)
	}

	_, err := ParseDayType("holiday")
	assert.Error(t, err)

	assert.Equal(t, "平日", DayTypeWeekday.Label())
	assert.Equal(t, "土日祝", DayTypeWeekendOrHoliday.Label())
}
