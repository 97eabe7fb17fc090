package board

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jinzhu/copier"
	"github.com/travigo/subwayboard/pkg/ctdf"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCount   = 2
	MinCount       = 1
	MaxCount       = 5
	DefaultRefresh = 15 * time.Second
)

var ErrNoPanels = errors.New("layout has no panels")

type PanelConfig struct {
	Line      string `yaml:"line"`
	Station   string `yaml:"station"`
	Direction string `yaml:"direction"`
	Count     int    `yaml:"count,omitempty"`
	Title     string `yaml:"title,omitempty"`
}

func (p PanelConfig) Key() ctdf.TimetableKey {
	return ctdf.TimetableKey{
		Line:      p.Line,
		Station:   p.Station,
		Direction: p.Direction,
	}
}

// Layout describes a board of one or more panels. Panels inherit count from the board when unset.
type Layout struct {
	Timezone   string        `yaml:"timezone"`
	CutoffHour *int          `yaml:"cutoffhour"`
	Count      int           `yaml:"count"`
	DayType    string        `yaml:"daytype"`
	Refresh    time.Duration `yaml:"refresh"`
	Panels     []PanelConfig `yaml:"panels"`
}

func ParseLayout(body []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(body, &layout); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	if err := layout.Normalise(); err != nil {
		return nil, err
	}

	return &layout, nil
}

func LoadLayout(path string) (*Layout, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}

	return ParseLayout(body)
}

// Normalise validates the layout and fills every panel with the board defaults
func (l *Layout) Normalise() error {
	if len(l.Panels) == 0 {
		return ErrNoPanels
	}

	if _, err := ctdf.ParseDayType(l.DayType); err != nil {
		return fmt.Errorf("layout daytype: %w", err)
	}

	if l.Timezone != "" {
		if _, err := time.LoadLocation(l.Timezone); err != nil {
			return fmt.Errorf("layout timezone: %w", err)
		}
	}

	if l.CutoffHour != nil && (*l.CutoffHour < 0 || *l.CutoffHour > 23) {
		return fmt.Errorf("layout cutoffhour %d outside 0-23", *l.CutoffHour)
	}

	if l.Refresh < 0 {
		return fmt.Errorf("layout refresh %s is negative", l.Refresh)
	}

	l.Count = ClampCount(l.Count)

	for i, panel := range l.Panels {
		if panel.Line == "" || panel.Station == "" || panel.Direction == "" {
			return fmt.Errorf("layout panel %d needs line, station and direction", i+1)
		}

		resolved := PanelConfig{Count: l.Count}
		if err := copier.CopyWithOption(&resolved, &panel, copier.Option{IgnoreEmpty: true}); err != nil {
			return fmt.Errorf("layout panel %d: %w", i+1, err)
		}
		resolved.Count = ClampCount(resolved.Count)

		l.Panels[i] = resolved
	}

	return nil
}

func (l *Layout) Override() ctdf.DayType {
	dayType, _ := ctdf.ParseDayType(l.DayType)

	return dayType
}

// ClampCount keeps a departure count within 1 to 5, zero meaning the default of 2
func ClampCount(count int) int {
	switch {
	case count == 0:
		return DefaultCount
	case count < MinCount:
		return MinCount
	case count > MaxCount:
		return MaxCount
	default:
		return count
	}
}
