package ctdf

import "fmt"

// DestinationPlaceholder is shown when a scheduled departure has no destination label
const DestinationPlaceholder = "—"

type TimetableKey struct {
	Line      string `groups:"basic"`
	Station   string `groups:"basic"`
	Direction string `groups:"basic"`
}

func (k TimetableKey) String() string {
	return fmt.Sprintf("%s_%s_%s", k.Line, k.Station, k.Direction)
}

type ScheduleEntry struct {
	Time        ClockTime
	Destination string
	Remark      string
}

// ScheduleTable holds the departures of one line/station/direction for one day type.
// Entries keep their source order and are never modified once the table is built.
type ScheduleTable struct {
	Key     TimetableKey
	DayType DayType
	Entries []ScheduleEntry
}

func (t *ScheduleTable) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Entries)
}
