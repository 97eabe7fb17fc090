package ctdf

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokyo = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func at(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, tokyo)
}

func tableOf(times ...string) *ScheduleTable {
	table := &ScheduleTable{
		Key:     TimetableKey{Line: "南北線", Station: "さっぽろ", Direction: "麻生方面"},
		DayType: DayTypeWeekday,
	}
	for _, t := range times {
		table.Entries = append(table.Entries, ScheduleEntry{Time: MustParseClockTime(t), Destination: "麻生"})
	}
	return table
}

func scheduledTimes(board []*DepartureBoard) []string {
	var times []string
	for _, item := range board {
		times = append(times, item.ScheduledTime.String())
	}
	return times
}

func midnightTable() *ScheduleTable {
	return tableOf("23:30", "23:40", "23:50", "00:00", "00:10", "00:20", "05:00", "05:30")
}

func TestGenerateDepartureBoardEvening(t *testing.T) {
	board := GenerateDepartureBoard(midnightTable(), at(2026, 1, 17, 22, 0, 0), 3)

	assert.Equal(t, []string{"23:30", "23:40", "23:50"}, scheduledTimes(board))
	assert.Equal(t, 90, board[0].MinutesUntil)
	assert.Equal(t, 110, board[2].MinutesUntil)
}

func TestGenerateDepartureBoardRollsPastMidnight(t *testing.T) {
	now := at(2026, 1, 17, 23, 45, 0)
	board := GenerateDepartureBoard(midnightTable(), now, 4)

	require.Len(t, board, 4)
	assert.Equal(t, []string{"23:50", "00:00", "00:10", "00:20"}, scheduledTimes(board))
	assert.Equal(t, 17, board[0].Time.Day())
	for _, item := range board[1:] {
		assert.Equal(t, 18, item.Time.Day(), "%s should resolve to the next calendar date", item.ScheduledTime)
	}
	assert.Equal(t, []int{5, 15, 25, 35}, []int{board[0].MinutesUntil, board[1].MinutesUntil, board[2].MinutesUntil, board[3].MinutesUntil})

	board = GenerateDepartureBoard(midnightTable(), at(2026, 1, 17, 23, 51, 0), 3)
	assert.Equal(t, []string{"00:00", "00:10", "00:20"}, scheduledTimes(board))
}

func TestGenerateDepartureBoardAfterLastTrain(t *testing.T) {
	board := GenerateDepartureBoard(midnightTable(), at(2026, 1, 17, 0, 30, 0), 3)

	require.NotEmpty(t, board)
	assert.Equal(t, "05:00", board[0].ScheduledTime.String())
	assert.NotContains(t, scheduledTimes(board), "00:00")
	assert.NotContains(t, scheduledTimes(board), "00:10")
	assert.NotContains(t, scheduledTimes(board), "00:20")
	assert.Equal(t, 270, board[0].MinutesUntil)
}

func TestGenerateDepartureBoardCrossingMidnightOrder(t *testing.T) {
	table := tableOf("00:10", "23:30")

	board := GenerateDepartureBoard(table, at(2026, 1, 17, 22, 0, 0), 2)
	assert.Equal(t, []string{"23:30", "00:10"}, scheduledTimes(board))

	board = GenerateDepartureBoard(table, at(2026, 1, 17, 23, 50, 0), 2)
	assert.Equal(t, []string{"00:10", "23:30"}, scheduledTimes(board))
	assert.Equal(t, 20, board[0].MinutesUntil)
}

func TestGenerateDepartureBoardInclusiveNow(t *testing.T) {
	board := GenerateDepartureBoard(midnightTable(), at(2026, 1, 17, 23, 40, 0), 1)

	require.Len(t, board, 1)
	assert.Equal(t, "23:40", board[0].ScheduledTime.String())
	assert.Equal(t, 0, board[0].MinutesUntil)
	assert.True(t, board[0].Time.Equal(at(2026, 1, 17, 23, 40, 0)))
}

func TestGenerateDepartureBoardCountLargerThanTable(t *testing.T) {
	table := tableOf("06:00", "07:00")

	board := GenerateDepartureBoard(table, at(2026, 1, 18, 1, 0, 0), 5)
	assert.Equal(t, []string{"06:00", "07:00"}, scheduledTimes(board))
}

func TestGenerateDepartureBoardSingleEntryNotRepeated(t *testing.T) {
	board := GenerateDepartureBoard(tableOf("12:00"), at(2026, 1, 17, 13, 0, 0), 3)

	require.Len(t, board, 1)
	assert.Equal(t, 23*60, board[0].MinutesUntil)
}

func TestGenerateDepartureBoardEmpty(t *testing.T) {
	now := at(2026, 1, 17, 12, 0, 0)

	assert.Empty(t, GenerateDepartureBoard(nil, now, 3))
	assert.Empty(t, GenerateDepartureBoard(tableOf(), now, 3))
	assert.Empty(t, GenerateDepartureBoard(tableOf("12:30"), now, 0))
}

func TestGenerateDepartureBoardRounding(t *testing.T) {
	table := tableOf("22:15")

	tests := []struct {
		second   int
		expected int
	}{
		{0, 15},
		{29, 15},
		{30, 15}, // exactly 14.5 minutes rounds away from zero
		{31, 14},
	}

	for _, test := range tests {
		board := GenerateDepartureBoard(table, at(2026, 1, 17, 22, 0, test.second), 1)
		require.Len(t, board, 1)
		assert.Equal(t, test.expected, board[0].MinutesUntil, "now 22:00:%02d", test.second)
	}
}

func TestGenerateDepartureBoardProperties(t *testing.T) {
	table := tableOf("22:15", "22:30", "23:00", "23:30", "00:00", "00:30", "05:30", "06:00", "12:00")

	for minute := 0; minute < 24*60; minute += 7 {
		now := at(2026, 1, 17, 0, 0, 0).Add(time.Duration(minute)*time.Minute + 13*time.Second)

		board := GenerateDepartureBoard(table, now, 4)
		again := GenerateDepartureBoard(table, now, 4)
		assert.Equal(t, board, again)
		assert.Len(t, board, 4)

		for i, item := range board {
			assert.GreaterOrEqual(t, item.MinutesUntil, 0)
			assert.False(t, item.Time.Before(now))
			if i > 0 {
				assert.False(t, item.Time.Before(board[i-1].Time))
				assert.GreaterOrEqual(t, item.MinutesUntil, board[i-1].MinutesUntil)
			}
		}
	}
}

func TestGenerateDepartureBoardCarriesEntryFields(t *testing.T) {
	table := &ScheduleTable{Entries: []ScheduleEntry{
		{Time: MustParseClockTime("08:59"), Destination: "自衛隊前", Remark: "自衛隊前行"},
		{Time: MustParseClockTime("09:03")},
	}}

	board := GenerateDepartureBoard(table, at(2026, 1, 13, 8, 50, 0), 2)

	require.Len(t, board, 2)
	assert.Equal(t, "自衛隊前", board[0].DisplayDestination())
	assert.Equal(t, "自衛隊前行", board[0].Remark)
	assert.Equal(t, DestinationPlaceholder, board[1].DisplayDestination())
	assert.Equal(t, "", board[1].Remark)
}
