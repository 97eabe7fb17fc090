package timetable

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subwayboard/pkg/ctdf"
)

type countingSource struct {
	MemorySource

	mutex sync.Mutex
	loads int
}

func (c *countingSource) Load(ctx context.Context, key SourceKey) (*Timetable, error) {
	c.mutex.Lock()
	c.loads++
	c.mutex.Unlock()

	return c.MemorySource.Load(ctx, key)
}

type recordingObserver struct {
	mutex   sync.Mutex
	results []string
}

func (r *recordingObserver) TimetableLoaded(result string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.results = append(r.results, result)
}

func newCountingSource() *countingSource {
	return &countingSource{
		MemorySource: MemorySource{
			Keys: []SourceKey{
				{ID: "asabu", Key: asabuKey},
				{ID: "bad", Key: ctdf.TimetableKey{Line: "東西線", Station: "大通", Direction: "宮の沢方面"}},
			},
			Records: map[string][]Record{
				"asabu": {
					{Line: "南北線", Station: "麻生", Direction: "真駒内方面", DayType: "weekday", Time: "06:00"},
				},
				"bad": {
					{Line: "東西線", Station: "大通", Direction: "宮の沢方面", DayType: "weekday", Time: "25:00"},
				},
			},
		},
	}
}

func TestStoreCachesLoads(t *testing.T) {
	source := newCountingSource()
	observer := &recordingObserver{}
	store := NewStore(source)
	store.Observer = observer

	first, err := store.Load(context.Background(), source.Keys[0])
	require.NoError(t, err)

	second, err := store.Load(context.Background(), source.Keys[0])
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, source.loads)
	assert.Equal(t, []string{LoadResultLoaded, LoadResultCached}, observer.results)

	store.ReloadAll()
	_, err = store.Load(context.Background(), source.Keys[0])
	require.NoError(t, err)
	assert.Equal(t, 2, source.loads)
}

func TestStoreConcurrentLoads(t *testing.T) {
	source := newCountingSource()
	store := NewStore(source)

	var wg sync.WaitGroup
	results := make([]*Timetable, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = store.Load(context.Background(), source.Keys[0])
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		assert.Same(t, results[0], result)
	}
}

func TestStoreLoadFailure(t *testing.T) {
	source := newCountingSource()
	observer := &recordingObserver{}
	store := NewStore(source)
	store.Observer = observer

	_, err := store.Load(context.Background(), source.Keys[1])

	var formatError DataFormatError
	require.True(t, errors.As(err, &formatError))
	assert.Equal(t, "time", formatError.Column)
	assert.Equal(t, []string{LoadResultFailed}, observer.results)

	// Failures are not cached
	_, _ = store.Load(context.Background(), source.Keys[1])
	assert.Equal(t, 2, source.loads)
}

func TestStoreCatalog(t *testing.T) {
	store := NewStore(newCountingSource())

	catalog, err := store.Catalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"南北線", "東西線"}, catalog.Lines())
	assert.Equal(t, []string{"麻生"}, catalog.Stations("南北線"))
	assert.Equal(t, []string{"真駒内方面"}, catalog.Directions("南北線", "麻生"))
	assert.Empty(t, catalog.Stations("東豊線"))

	key, err := catalog.Find(asabuKey)
	require.NoError(t, err)
	assert.Equal(t, "asabu", key.ID)

	_, err = catalog.Find(ctdf.TimetableKey{Line: "南北線", Station: "すすきの", Direction: "麻生方面"})
	assert.ErrorIs(t, err, ErrUnknownStation)
}
