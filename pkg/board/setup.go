package board

import (
	"context"

	"github.com/travigo/subwayboard/pkg/config"
	"github.com/travigo/subwayboard/pkg/metrics"
	"github.com/travigo/subwayboard/pkg/timetable"
)

// Setup builds a board from the environment configuration. collector may be nil.
func Setup(ctx context.Context, cfg *config.Config, collector *metrics.Collector) (*Board, error) {
	board := &Board{
		Location:   cfg.Location,
		CutoffHour: cfg.CutoffHour,
	}

	var observer timetable.LoadObserver
	if collector != nil {
		observer = collector
		board.Metrics = collector
	}

	store, err := cfg.NewStore(ctx, observer)
	if err != nil {
		return nil, err
	}
	board.Store = store

	board.Holidays = cfg.LoadHolidays(ctx)
	if board.Holidays == nil && collector != nil {
		collector.HolidayLookupFailed()
	}

	return board, nil
}
