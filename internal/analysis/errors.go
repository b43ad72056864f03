package analysis

import (
	"errors"
	"fmt"

	"fightprog/internal/phases"
)

var (
	ErrInvalidEventMatch    = phases.ErrInvalidEventMatch
	ErrUnspecifiedFightTime = errors.New("FFLogs API did not specify fight timings.")
	ErrUnlabeledFight       = errors.New("FFLogs API did not specify fight name.")
	ErrNoMatchingFights     = errors.New("That report did not contain any fights matching the requested fight.")
	ErrInvalidReportCode    = errors.New("That wasn't a valid report code or FFLogs url.")
)

// SourceError wraps any failure reported by the event source.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("Something went wrong when communicating with the FFLogs API: %v", e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// UnknownFightError means no phase definitions exist for a fight name.
type UnknownFightError struct {
	Name string
}

func (e *UnknownFightError) Error() string {
	return fmt.Sprintf("Phase definitions do not yet exist for %s.", e.Name)
}

func asSourceError(err error) error {
	if err == nil || errors.Is(err, ErrInvalidEventMatch) {
		return err
	}
	var se *SourceError
	if errors.As(err, &se) {
		return err
	}
	return &SourceError{Err: err}
}
