package timetable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/travigo/subwayboard/pkg/ctdf"
	"golang.org/x/exp/slices"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ParseCSV reads a timetable CSV with the columns line, station, direction, day_type, time
// and the optional dest and remark columns
func ParseCSV(sourceID string, key ctdf.TimetableKey, reader io.Reader) (*Timetable, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourceID, err)
	}
	body = bytes.TrimPrefix(body, utf8BOM)

	header, err := csv.NewReader(bytes.NewReader(body)).Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, DataFormatError{Source: sourceID, Line: 1, Reason: err}
	}

	var missing []string
	for _, column := range requiredColumns {
		if !slices.Contains(header, column) {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, DataFormatError{Source: sourceID, Column: strings.Join(missing, ", "), Line: 1, Reason: ErrMissingColumn}
	}

	var records []Record
	if err := gocsv.UnmarshalBytes(body, &records); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, DataFormatError{Source: sourceID, Reason: err}
	}

	for i := range records {
		records[i].Sequence = i
	}

	// Header is line 1
	return NewTimetable(sourceID, key, records, 2)
}
