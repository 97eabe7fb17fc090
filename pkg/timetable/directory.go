package timetable

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const UnknownKeyPart = "?"

// DirectorySource reads line_station_direction.csv files from a single directory
type DirectorySource struct {
	Path string
}

func NewDirectorySource(path string) *DirectorySource {
	return &DirectorySource{Path: path}
}

func (d *DirectorySource) Name() string {
	return fmt.Sprintf("directory:%s", d.Path)
}

func (d *DirectorySource) List(ctx context.Context) ([]SourceKey, error) {
	files, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("listing timetable directory: %w", err)
	}

	var keys []SourceKey
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".csv") {
			continue
		}

		keys = append(keys, SourceKey{
			ID:  file.Name(),
			Key: KeyFromFileName(file.Name()),
		})
	}

	slices.SortFunc(keys, func(a, b SourceKey) int {
		return strings.Compare(a.ID, b.ID)
	})

	return keys, nil
}

func (d *DirectorySource) Load(ctx context.Context, key SourceKey) (*Timetable, error) {
	path := filepath.Join(d.Path, filepath.Base(key.ID))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening timetable %s: %w", key.ID, err)
	}
	defer file.Close()

	log.Debug().Str("file", path).Msg("Loading timetable file")

	return ParseCSV(key.ID, key.Key, file)
}

// KeyFromFileName splits line_station_direction.csv. The direction takes every remaining part so
// directions may contain underscores. Names with fewer than three parts are listed as "?".
func KeyFromFileName(name string) ctdf.TimetableKey {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.SplitN(stem, "_", 3)

	if len(parts) < 3 {
		return ctdf.TimetableKey{
			Line:      UnknownKeyPart,
			Station:   UnknownKeyPart,
			Direction: UnknownKeyPart,
		}
	}

	return ctdf.TimetableKey{
		Line:      parts[0],
		Station:   parts[1],
		Direction: parts[2],
	}
}
