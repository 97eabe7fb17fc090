package timetable

import (
	"context"

	"github.com/travigo/subwayboard/pkg/ctdf"
)

// SourceKey identifies one loadable timetable. ID is unique within a Source and is the cache key.
type SourceKey struct {
	ID  string
	Key ctdf.TimetableKey
}

type Source interface {
	Name() string
	List(ctx context.Context) ([]SourceKey, error)
	Load(ctx context.Context, key SourceKey) (*Timetable, error)
}
