package dataimporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subwayboard/pkg/ctdf"
	"github.com/travigo/subwayboard/pkg/timetable"
)

func TestDocuments(t *testing.T) {
	key := timetable.SourceKey{
		ID:  "南北線_麻生_真駒内方面.csv",
		Key: ctdf.TimetableKey{Line: "南北線", Station: "麻生", Direction: "真駒内方面"},
	}

	records := []timetable.Record{
		{Line: "南北線", Station: "麻生", Direction: "真駒内方面", DayType: "weekday", Time: "6:00", Destination: "真駒内"},
		{Line: "南北線", Station: "麻生", Direction: "真駒内方面", DayType: "weekend_holiday", Time: "06:10", Remark: "始発"},
	}

	loaded, err := timetable.NewTimetable(key.ID, key.Key, records, 2)
	require.NoError(t, err)

	documents := Documents(key, loaded)
	require.Len(t, documents, 2)

	assert.Equal(t, "06:00", documents[0].Time)
	assert.Equal(t, key.ID, documents[0].Source)
	assert.Equal(t, key.Key, documents[0].Key)
	assert.Equal(t, 0, documents[0].Sequence)
	assert.Equal(t, 1, documents[1].Sequence)
	assert.Equal(t, "始発", documents[1].Remark)

	// Imported documents load back into the same rows
	reloaded, err := timetable.NewTimetable(key.ID, key.Key, documents, 2)
	require.NoError(t, err)
	assert.Equal(t, loaded.Rows, reloaded.Rows)
}
