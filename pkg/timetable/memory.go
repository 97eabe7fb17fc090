package timetable

import (
	"context"
	"fmt"
)

// MemorySource serves fixed records, mostly useful for tests
type MemorySource struct {
	Keys    []SourceKey
	Records map[string][]Record
}

func (m *MemorySource) Name() string {
	return "memory"
}

func (m *MemorySource) List(ctx context.Context) ([]SourceKey, error) {
	return m.Keys, nil
}

func (m *MemorySource) Load(ctx context.Context, key SourceKey) (*Timetable, error) {
	records, exists := m.Records[key.ID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", key.ID, ErrUnknownStation)
	}

	return NewTimetable(key.ID, key.Key, records, 1)
}
