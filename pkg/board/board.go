package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/subwayboard/pkg/ctdf"
	"github.com/travigo/subwayboard/pkg/timetable"
	"github.com/travigo/subwayboard/pkg/util"
	"golang.org/x/exp/slices"
)

type PanelStatus string

const (
	PanelStatusOK           PanelStatus = "ok"
	PanelStatusNoDepartures PanelStatus = "no_departures"
	PanelStatusNoTimetable  PanelStatus = "no_timetable"
	PanelStatusLoadFailed   PanelStatus = "load_failed"
)

const maxConcurrentPanels = 8

type Metrics interface {
	ObserveRefresh(duration time.Duration)
	PanelResolved(status string)
}

type Board struct {
	Store      *timetable.Store
	Holidays   ctdf.HolidayLookup
	Location   *time.Location
	CutoffHour int
	Metrics    Metrics
}

type Request struct {
	// Now defaults to the current time when zero
	Now      time.Time
	Override ctdf.DayType
	Panels   []PanelConfig
}

type Panel struct {
	Title      string                 `groups:"basic"`
	Key        ctdf.TimetableKey      `groups:"basic"`
	SourceID   string                 `groups:"detailed"`
	Count      int                    `groups:"basic"`
	Status     PanelStatus            `groups:"basic"`
	Message    string                 `groups:"basic"`
	Departures []*ctdf.DepartureBoard `groups:"basic"`

	index int
	err   error
}

func (p *Panel) Err() error {
	return p.err
}

type Snapshot struct {
	GeneratedAt time.Time    `groups:"basic"`
	ServiceDate string       `groups:"basic"`
	DayType     ctdf.DayType `groups:"basic"`
	AutoDayType ctdf.DayType `groups:"basic"`
	Panels      []*Panel     `groups:"basic"`
}

func (s *Snapshot) Event() *ctdf.Event {
	return &ctdf.Event{
		Type:      ctdf.EventTypeDepartureBoardRefreshed,
		Timestamp: s.GeneratedAt,
		Body:      s,
	}
}

// Refresh selects the day type once, then resolves every panel against it concurrently.
// Panels come back in request order.
func (b *Board) Refresh(ctx context.Context, request Request) (*Snapshot, error) {
	startTime := time.Now()

	now := request.Now
	if now.IsZero() {
		now = time.Now()
	}
	if b.Location != nil {
		now = now.In(b.Location)
	}

	autoDayType := ctdf.EffectiveDayType(now, ctdf.DayTypeAuto, b.Holidays, b.CutoffHour)
	dayType := autoDayType
	if request.Override.IsOverride() {
		dayType = request.Override
	}

	catalog, err := b.Store.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timetables: %w", err)
	}

	snapshot := &Snapshot{
		GeneratedAt: now,
		ServiceDate: ctdf.EffectiveServiceDate(now, b.CutoffHour).Format(ctdf.YearMonthDayFormat),
		DayType:     dayType,
		AutoDayType: autoDayType,
	}

	p := pool.NewWithResults[*Panel]().WithMaxGoroutines(maxConcurrentPanels)

	for i, config := range request.Panels {
		i, config := i, config
		p.Go(func() *Panel {
			panel := b.resolvePanel(ctx, catalog, config, dayType, now)
			panel.index = i

			return panel
		})
	}

	snapshot.Panels = p.Wait()
	slices.SortFunc(snapshot.Panels, func(x, y *Panel) int {
		return x.index - y.index
	})

	if b.Metrics != nil {
		for _, panel := range snapshot.Panels {
			b.Metrics.PanelResolved(string(panel.Status))
		}
		b.Metrics.ObserveRefresh(time.Since(startTime))
	}

	return snapshot, nil
}

func (b *Board) resolvePanel(ctx context.Context, catalog *timetable.Catalog, config PanelConfig, dayType ctdf.DayType, now time.Time) *Panel {
	panel := &Panel{
		Key:   config.Key(),
		Count: ClampCount(config.Count),
		Title: util.FirstNonEmpty(config.Title, DefaultTitle(config.Key(), dayType)),
	}

	sourceKey, err := catalog.Find(panel.Key)
	if err != nil {
		return panel.failed(err)
	}
	panel.SourceID = sourceKey.ID

	loaded, err := b.Store.Load(ctx, sourceKey)
	if err != nil {
		return panel.failed(err)
	}

	table := loaded.Table(dayType)
	if table.Len() == 0 {
		panel.Status = PanelStatusNoTimetable
		panel.Message = fmt.Sprintf("このCSVに day_type=%s の行がありません。", dayType)
		return panel
	}

	panel.Departures = ctdf.GenerateDepartureBoard(table, now, panel.Count)
	if len(panel.Departures) == 0 {
		panel.Status = PanelStatusNoDepartures
		panel.Message = NoDeparturesMessage
		return panel
	}

	panel.Status = PanelStatusOK

	return panel
}

func (p *Panel) failed(err error) *Panel {
	p.Status = PanelStatusLoadFailed
	p.err = err

	var formatError timetable.DataFormatError
	if errors.As(err, &formatError) {
		p.Message = fmt.Sprintf("CSVの読み込みに失敗: %s", formatError)
	} else {
		p.Message = err.Error()
	}

	log.Error().Err(err).Str("panel", p.Key.String()).Msg("Failed to resolve panel")

	return p
}

func DefaultTitle(key ctdf.TimetableKey, dayType ctdf.DayType) string {
	return fmt.Sprintf("%s / %s / %s（%s）", key.Line, key.Station, key.Direction, dayType.Label())
}

// Run refreshes the board immediately and then every interval until ctx is cancelled. A zero
// interval refreshes once. A fixed Now keeps its offset from the wall clock on later refreshes.
func (b *Board) Run(ctx context.Context, interval time.Duration, request Request, onSnapshot func(*Snapshot)) error {
	snapshot, err := b.Refresh(ctx, request)
	if err != nil {
		return err
	}
	onSnapshot(snapshot)

	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var fixedOffset time.Duration
	if !request.Now.IsZero() {
		fixedOffset = time.Until(request.Now)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case tick := <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			request.Now = tick.Add(fixedOffset)

			snapshot, err := b.Refresh(ctx, request)
			if err != nil {
				log.Error().Err(err).Msg("Board refresh failed")
				continue
			}
			onSnapshot(snapshot)
		}
	}
}
