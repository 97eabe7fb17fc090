package ctdf

import (
	"math"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"golang.org/x/exp/slices"
)

type DepartureBoard struct {
	ScheduledTime      ClockTime `groups:"basic"`
	DestinationDisplay string    `groups:"basic"`
	Remark             string    `groups:"basic"`

	Time         time.Time `groups:"basic"`
	MinutesUntil int       `groups:"basic"`
}

func (d *DepartureBoard) DisplayDestination() string {
	if d.DestinationDisplay == "" {
		return DestinationPlaceholder
	}

	return d.DestinationDisplay
}

// GenerateDepartureBoard returns up to count departures at or after dateTime.
// A scheduled time that has already passed today is taken to mean the same time tomorrow,
// so 00:10 sorts after 23:30 late in the evening. MinutesUntil rounds half away from zero.
func GenerateDepartureBoard(table *ScheduleTable, dateTime time.Time, count int) []*DepartureBoard {
	if table.Len() == 0 || count <= 0 {
		return nil
	}

	nextDayDuration, _ := iso8601.ParseISO8601("P1D")
	dayAfterDateTime := nextDayDuration.Shift(dateTime)

	departureBoard := make([]*DepartureBoard, 0, len(table.Entries))

	for _, entry := range table.Entries {
		stopDepartureTime := entry.Time.OnDate(dateTime)
		if stopDepartureTime.Before(dateTime) {
			stopDepartureTime = entry.Time.OnDate(dayAfterDateTime)
		}

		if stopDepartureTime.Before(dateTime) {
			continue
		}

		departureBoard = append(departureBoard, &DepartureBoard{
			ScheduledTime:      entry.Time,
			DestinationDisplay: entry.Destination,
			Remark:             entry.Remark,
			Time:               stopDepartureTime,
		})
	}

	slices.SortStableFunc(departureBoard, func(a, b *DepartureBoard) int {
		return a.Time.Compare(b.Time)
	})

	// Once sorted cut off any records higher than our max count
	if len(departureBoard) > count {
		departureBoard = departureBoard[:count]
	}

	for _, item := range departureBoard {
		item.MinutesUntil = int(math.Round(item.Time.Sub(dateTime).Seconds() / 60))
	}

	if len(departureBoard) == 0 {
		return nil
	}

	return departureBoard
}
