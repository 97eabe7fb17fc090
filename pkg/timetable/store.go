package timetable

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	LoadResultLoaded = "loaded"
	LoadResultCached = "cached"
	LoadResultFailed = "failed"
)

type LoadObserver interface {
	TimetableLoaded(result string)
}

// Store caches parsed timetables per source ID. Cached timetables are never mutated; a file changed
// on disk is only picked up after ReloadAll.
type Store struct {
	Source   Source
	Observer LoadObserver

	mutex      sync.RWMutex
	timetables map[string]*Timetable
}

func NewStore(source Source) *Store {
	return &Store{
		Source:     source,
		timetables: map[string]*Timetable{},
	}
}

func (s *Store) Catalog(ctx context.Context) (*Catalog, error) {
	keys, err := s.Source.List(ctx)
	if err != nil {
		return nil, err
	}

	return NewCatalog(keys), nil
}

func (s *Store) Load(ctx context.Context, key SourceKey) (*Timetable, error) {
	s.mutex.RLock()
	timetable, exists := s.timetables[key.ID]
	s.mutex.RUnlock()

	if exists {
		s.observe(LoadResultCached)
		return timetable, nil
	}

	timetable, err := s.Source.Load(ctx, key)
	if err != nil {
		s.observe(LoadResultFailed)
		log.Error().Err(err).Str("source", s.Source.Name()).Str("id", key.ID).Msg("Failed to load timetable")
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Another caller may have loaded it meanwhile, keep the first so readers share one copy
	if existing, exists := s.timetables[key.ID]; exists {
		s.observe(LoadResultCached)
		return existing, nil
	}

	if s.timetables == nil {
		s.timetables = map[string]*Timetable{}
	}
	s.timetables[key.ID] = timetable

	s.observe(LoadResultLoaded)
	log.Debug().Str("source", s.Source.Name()).Str("id", key.ID).Int("rows", len(timetable.Rows)).Msg("Loaded timetable")

	return timetable, nil
}

// ReloadAll drops every cached timetable so the next Load reads the source again
func (s *Store) ReloadAll() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.timetables = map[string]*Timetable{}
}

func (s *Store) observe(result string) {
	if s.Observer != nil {
		s.Observer.TimetableLoaded(result)
	}
}
