package specialdays

import (
	"fmt"
	"os"
	"time"

	"github.com/travigo/subwayboard/pkg/ctdf"
	"gopkg.in/yaml.v3"
)

// Parse reads a flat mapping of YYYY-MM-DD dates to holiday names. JSON is valid YAML so both are accepted.
func Parse(body []byte) (*Calendar, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("parsing holidays: %w", err)
	}

	calendar := NewCalendar()

	if len(document.Content) == 0 {
		return calendar, nil
	}

	// Walk the mapping node directly, decoding into a map would resolve unquoted dates as timestamps
	mapping := document.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing holidays: expected a mapping of dates to names at line %d", mapping.Line)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		date, err := time.Parse(ctdf.YearMonthDayFormat, keyNode.Value)
		if err != nil {
			return nil, fmt.Errorf("parsing holidays: line %d: %w", keyNode.Line, err)
		}

		calendar.Add(date, valueNode.Value)
	}

	return calendar, nil
}

func LoadFile(path string) (*Calendar, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading holidays file: %w", err)
	}

	return Parse(body)
}
