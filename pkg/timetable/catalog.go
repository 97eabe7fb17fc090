package timetable

import (
	"fmt"

	"github.com/travigo/subwayboard/pkg/ctdf"
	"github.com/travigo/subwayboard/pkg/util"
)

// Catalog indexes the timetables a source offers by line, station and direction
type Catalog struct {
	Keys []SourceKey
}

func NewCatalog(keys []SourceKey) *Catalog {
	return &Catalog{Keys: keys}
}

func (c *Catalog) Lines() []string {
	var lines []string
	for _, key := range c.Keys {
		lines = append(lines, key.Key.Line)
	}

	return util.SortedUnique(lines)
}

func (c *Catalog) Stations(line string) []string {
	var stations []string
	for _, key := range c.Keys {
		if key.Key.Line == line {
			stations = append(stations, key.Key.Station)
		}
	}

	return util.SortedUnique(stations)
}

func (c *Catalog) Directions(line string, station string) []string {
	var directions []string
	for _, key := range c.Keys {
		if key.Key.Line == line && key.Key.Station == station {
			directions = append(directions, key.Key.Direction)
		}
	}

	return util.SortedUnique(directions)
}

// Find returns the first source for the key, sources being listed in ID order
func (c *Catalog) Find(key ctdf.TimetableKey) (SourceKey, error) {
	for _, sourceKey := range c.Keys {
		if sourceKey.Key == key {
			return sourceKey, nil
		}
	}

	return SourceKey{}, fmt.Errorf("%s: %w", key, ErrUnknownStation)
}
