package timetable

import (
	"github.com/travigo/subwayboard/pkg/ctdf"
	"github.com/travigo/subwayboard/pkg/util"
)

var requiredColumns = []string{"line", "station", "direction", "day_type", "time"}

// Record is one timetable row as stored in CSV files and the timetable_entries collection
type Record struct {
	Line        string `csv:"line" bson:"line"`
	Station     string `csv:"station" bson:"station"`
	Direction   string `csv:"direction" bson:"direction"`
	DayType     string `csv:"day_type" bson:"day_type"`
	Time        string `csv:"time" bson:"time"`
	Destination string `csv:"dest" bson:"dest"`
	Remark      string `csv:"remark" bson:"remark"`

	Source   string            `csv:"-" bson:"source"`
	Key      ctdf.TimetableKey `csv:"-" bson:"key"`
	Sequence int               `csv:"-" bson:"sequence"`
}

type Row struct {
	Key     ctdf.TimetableKey
	DayType ctdf.DayType
	Entry   ctdf.ScheduleEntry
}

// Timetable is every row loaded from one source, across all day types
type Timetable struct {
	SourceID string
	Key      ctdf.TimetableKey
	Rows     []Row
}

// Table returns the partition for one day type. It is empty, not nil, when the source has no such rows.
func (t *Timetable) Table(dayType ctdf.DayType) *ctdf.ScheduleTable {
	table := &ctdf.ScheduleTable{
		Key:     t.Key,
		DayType: dayType,
	}

	for _, row := range t.Rows {
		if row.DayType == dayType {
			table.Entries = append(table.Entries, row.Entry)
		}
	}

	return table
}

func (t *Timetable) DayTypes() []ctdf.DayType {
	var dayTypes []ctdf.DayType
	seen := map[ctdf.DayType]bool{}

	for _, row := range t.Rows {
		if !seen[row.DayType] {
			seen[row.DayType] = true
			dayTypes = append(dayTypes, row.DayType)
		}
	}

	return dayTypes
}

// NewTimetable validates records and converts them into rows. firstLine is the line number of
// records[0] in the source, used for error reporting only.
func NewTimetable(sourceID string, key ctdf.TimetableKey, records []Record, firstLine int) (*Timetable, error) {
	timetable := &Timetable{
		SourceID: sourceID,
		Key:      key,
		Rows:     make([]Row, 0, len(records)),
	}

	for i, record := range records {
		line := firstLine + i

		required := map[string]string{
			"line":      record.Line,
			"station":   record.Station,
			"direction": record.Direction,
			"day_type":  record.DayType,
			"time":      record.Time,
		}
		for _, column := range requiredColumns {
			if util.NormaliseText(required[column]) == "" {
				return nil, DataFormatError{Source: sourceID, Column: column, Line: line, Reason: ErrMissingValue}
			}
		}

		clockTime, err := ctdf.ParseClockTime(record.Time)
		if err != nil {
			return nil, DataFormatError{Source: sourceID, Column: "time", Line: line, Reason: err}
		}

		timetable.Rows = append(timetable.Rows, Row{
			Key: ctdf.TimetableKey{
				Line:      util.NormaliseText(record.Line),
				Station:   util.NormaliseText(record.Station),
				Direction: util.NormaliseText(record.Direction),
			},
			DayType: ctdf.DayType(util.NormaliseText(record.DayType)),
			Entry: ctdf.ScheduleEntry{
				Time:        clockTime,
				Destination: util.NormaliseText(record.Destination),
				Remark:      util.NormaliseText(record.Remark),
			},
		})
	}

	return timetable, nil
}
