package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Refreshes       prometheus.Counter
	RefreshDuration prometheus.Histogram

	Panels          *prometheus.CounterVec // status label: ok|no_departures|no_timetable|load_failed
	TimetableLoads  *prometheus.CounterVec // result label: loaded|cached|failed
	HolidayFailures prometheus.Counter

	EventsPublished  prometheus.Counter
	EventsPublishErr prometheus.Counter
	EventsConsumed   prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subwayboard_refreshes_total",
			Help: "Total board refreshes.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "subwayboard_refresh_duration_seconds",
			Help:    "Duration of a board refresh across all panels.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		Panels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subwayboard_panels_total",
			Help: "Resolved panels by status.",
		}, []string{"status"}),
		TimetableLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subwayboard_timetable_loads_total",
			Help: "Timetable store lookups by result.",
		}, []string{"result"}),
		HolidayFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subwayboard_holiday_lookup_failures_total",
			Help: "Holiday calendar loads that failed and fell back to weekends only.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subwayboard_events_published_total",
			Help: "Total board events published to the queue.",
		}),
		EventsPublishErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subwayboard_events_publish_errors_total",
			Help: "Total board event publish errors.",
		}),
		EventsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subwayboard_events_consumed_total",
			Help: "Total board events taken off the queue.",
		}),
	}

	reg.MustRegister(
		c.Refreshes, c.RefreshDuration,
		c.Panels, c.TimetableLoads, c.HolidayFailures,
		c.EventsPublished, c.EventsPublishErr, c.EventsConsumed,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

func (c *Collector) ObserveRefresh(duration time.Duration) {
	c.Refreshes.Inc()
	c.RefreshDuration.Observe(duration.Seconds())
}

func (c *Collector) PanelResolved(status string) {
	c.Panels.WithLabelValues(status).Inc()
}

func (c *Collector) TimetableLoaded(result string) {
	c.TimetableLoads.WithLabelValues(result).Inc()
}

func (c *Collector) HolidayLookupFailed() {
	c.HolidayFailures.Inc()
}

func (c *Collector) EventPublished(err error) {
	if err != nil {
		c.EventsPublishErr.Inc()
		return
	}

	c.EventsPublished.Inc()
}

func (c *Collector) EventConsumed() {
	c.EventsConsumed.Inc()
}
