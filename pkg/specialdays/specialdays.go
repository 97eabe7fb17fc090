package specialdays

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/ctdf"
)

type Loader interface {
	Load(ctx context.Context) (*Calendar, error)
}

// LoadSpecialDayCache runs the loader and returns nil on failure so callers fall back to weekend only
// service selection. The result is a nil interface, never a typed nil, so the selector can detect it.
func LoadSpecialDayCache(ctx context.Context, loader Loader) ctdf.HolidayLookup {
	calendar, err := loader.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load holidays, continuing with weekends only")
		return nil
	}

	return calendar
}

type fileLoader string

func (f fileLoader) Load(ctx context.Context) (*Calendar, error) {
	return LoadFile(string(f))
}

func NewFileLoader(path string) Loader {
	return fileLoader(path)
}
