package board

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subwayboard/pkg/events"
	"github.com/travigo/subwayboard/pkg/metrics"
)

func TestSnapshotPublisherCountsOnServedCollector(t *testing.T) {
	collector := metrics.NewCollector()
	board := &Board{Store: testStore(), Location: tokyo, Metrics: collector}

	snapshot, err := board.Refresh(context.Background(), Request{
		Now:    time.Date(2026, time.January, 16, 22, 0, 0, 0, tokyo),
		Panels: []PanelConfig{{Line: asabuKey.Line, Station: asabuKey.Station, Direction: asabuKey.Direction}},
	})
	require.NoError(t, err)

	connection := rmq.NewTestConnection()
	publish, err := newSnapshotPublisher(connection, collector)
	require.NoError(t, err)

	publish(snapshot)
	publish(snapshot)

	assert.Len(t, connection.GetDeliveries(events.QueueName), 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.EventsPublished))

	recorder := httptest.NewRecorder()
	collector.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, recorder.Body.String(), "subwayboard_events_published_total 2")
	assert.Contains(t, recorder.Body.String(), "subwayboard_refreshes_total 1")
}

func TestSnapshotPublisherWithoutCollector(t *testing.T) {
	connection := rmq.NewTestConnection()
	publish, err := newSnapshotPublisher(connection, nil)
	require.NoError(t, err)

	publish(&Snapshot{GeneratedAt: time.Date(2026, time.January, 16, 22, 0, 0, 0, tokyo)})

	assert.Len(t, connection.GetDeliveries(events.QueueName), 1)
}
