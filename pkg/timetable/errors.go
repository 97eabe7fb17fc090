package timetable

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn  = errors.New("missing required column")
	ErrMissingValue   = errors.New("required value is empty")
	ErrUnknownStation = errors.New("no timetable for line, station and direction")
)

// DataFormatError reports a timetable source that cannot be turned into schedule tables
type DataFormatError struct {
	Source string
	Column string
	Line   int
	Reason error
}

func (e DataFormatError) Error() string {
	location := e.Source
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}

	switch {
	case e.Column == "":
		return fmt.Sprintf("%s: %s", location, e.Reason)
	case e.Reason == nil:
		return fmt.Sprintf("%s: invalid %s", location, e.Column)
	default:
		return fmt.Sprintf("%s: invalid %s: %s", location, e.Column, e.Reason)
	}
}

func (e DataFormatError) Unwrap() error {
	return e.Reason
}
