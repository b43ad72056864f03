package phases

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"fightprog/internal/events"
	"fightprog/internal/fflogs"
)

// ErrInvalidEventMatch means a marker matched an event that carries no timestamp.
var ErrInvalidEventMatch = errors.New("FFLogs API returned an unknown event type.")

// Resolved is a phase whose boundaries were located in one fight. StartEvent is nil when the
// phase has no start marker; End is nil when no end was found.
type Resolved struct {
	Name       string
	Start      uint64
	StartEvent events.Event
	End        *uint64
	EndEvent   events.Event
}

// Assemble resolves the phases of one fight in definition order. A phase whose start marker has no
// match ends the walk: it and every later phase are left out and no further requests are made.
// A missing end is allowed.
func Assemble(ctx context.Context, source fflogs.Source, reportCode string, defs []Definition, fightStart, fightEnd uint64) ([]Resolved, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", reportCode).Logger()
	cursor := fightStart
	resolved := make([]Resolved, 0, len(defs))

	for _, def := range defs {
		logger.Debug().Str("phase", def.Name).Uint64("start", cursor).Msg("Analysing phase")

		phase := Resolved{Name: def.Name, Start: cursor}

		if def.StartMarker != nil {
			ev, err := Find(ctx, source, reportCode, *def.StartMarker, cursor, fightEnd)
			if err != nil {
				return nil, fmt.Errorf("phase %s start: %w", def.Name, err)
			}
			if ev == nil {
				logger.Debug().Str("phase", def.Name).Msg("Phase not reached")
				break
			}
			ts, ok := ev.Timestamp()
			if !ok {
				return nil, fmt.Errorf("phase %s start: %w", def.Name, ErrInvalidEventMatch)
			}
			phase.Start, phase.StartEvent = ts, ev
		}

		if def.EndMarker != nil {
			ev, err := Find(ctx, source, reportCode, *def.EndMarker, phase.Start, fightEnd)
			if err != nil {
				return nil, fmt.Errorf("phase %s end: %w", def.Name, err)
			}
			if ev != nil {
				ts, ok := ev.Timestamp()
				if !ok {
					return nil, fmt.Errorf("phase %s end: %w", def.Name, ErrInvalidEventMatch)
				}
				phase.End, phase.EndEvent = &ts, ev
			}
		}

		cursor = phase.Start
		if phase.End != nil {
			cursor = *phase.End
		}
		resolved = append(resolved, phase)
	}

	return resolved, nil
}

// Backfill gives every phase but the last that has no end the start of the phase after it.
func Backfill(resolved []Resolved) {
	for i := 0; i+1 < len(resolved); i++ {
		if resolved[i].End != nil {
			continue
		}
		next := resolved[i+1].Start
		resolved[i].End = &next
		resolved[i].EndEvent = resolved[i+1].StartEvent
	}
}

// ClearedStatus is the outcome of one phase in one fight.
type ClearedStatus int

const (
	Clear ClearedStatus = iota
	Wiped
	Unknown
)

func (s ClearedStatus) String() string {
	switch s {
	case Clear:
		return "Clear"
	case Wiped:
		return "Wiped"
	default:
		return "Unknown"
	}
}

func (s ClearedStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Progress is how long a fight spent in a phase and whether it got through.
type Progress struct {
	PhaseName    string        `json:"phase"`
	DurationSecs float64       `json:"duration_secs"`
	Status       ClearedStatus `json:"status"`
}

// Classify turns backfilled phases into progress entries. Every phase with a known end is a clear.
// The last phase without an end runs to fightEnd and is a wipe, unless it is the final defined
// phase, where kill and wipe cannot be told apart.
func Classify(resolved []Resolved, defs []Definition, fightEnd uint64) []Progress {
	out := make([]Progress, 0, len(resolved))
	for i, phase := range resolved {
		last := i == len(resolved)-1

		var end uint64
		status := Clear
		switch {
		case phase.End != nil:
			end = *phase.End
		case !last:
			end = resolved[i+1].Start
		default:
			end = fightEnd
			status = Unknown
			if idx := (Encounter{Phases: defs}).Index(phase.Name); idx >= 0 && idx < len(defs)-1 {
				status = Wiped
			}
		}

		out = append(out, Progress{
			PhaseName:    phase.Name,
			DurationSecs: float64(span(phase.Start, end)) / 1000,
			Status:       status,
		})
	}
	return out
}

func span(start, end uint64) uint64 {
	if end < start {
		return 0
	}
	return end - start
}
