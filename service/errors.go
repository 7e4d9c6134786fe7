package services

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageSearch   Stage = "search"
	StageDetails  Stage = "details"
	StageDownload Stage = "download"
	StageHours    Stage = "opening_hours"
	StageWrite    Stage = "write"
)

// StageError attributes a failure to a stage and, where there is one, a place.
type StageError struct {
	Stage   Stage
	PlaceID string
	Err     error
}

func (e *StageError) Error() string {
	if e.PlaceID == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.PlaceID, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// ErrUnmatchedHours marks an opening-hours line with a time range that could
// not be parsed.
var ErrUnmatchedHours = errors.New("unrecognised opening hours line")

// HoursParseError carries the offending line and its position in the list.
type HoursParseError struct {
	Line     string
	Position int
	Reason   string
}

func (e *HoursParseError) Error() string {
	return fmt.Sprintf("%v at position %d (%s): %q", ErrUnmatchedHours, e.Position, e.Reason, e.Line)
}

func (e *HoursParseError) Unwrap() error { return ErrUnmatchedHours }

// StageOf reports the stage of err, or "" if it carries none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
