package phases

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fightprog/internal/eventlog"
	"fightprog/internal/events"
	"fightprog/internal/fflogs"
)

// Query derives the events view and request window used to search for the marker in [start, end).
func (m Marker) Query(start, end uint64) (fflogs.View, fflogs.Window) {
	window := fflogs.Window{Start: start, End: end}
	if m.Type != MarkerEvent {
		return fflogs.ViewSummary, window
	}

	hostility := m.hostility()
	window.Hostility = &hostility
	switch m.EventType {
	case EventDeath:
		window.TargetID = m.TargetID
		return fflogs.ViewDeaths, window
	default:
		window.AbilityID = m.AbilityID
		return fflogs.ViewCasts, window
	}
}

// Matches reports whether ev has the marker's shape and fields. A fightStart marker matches
// anything.
func (m Marker) Matches(ev events.Event) bool {
	return m.matches(ev, &log.Logger)
}

func (m Marker) matches(ev events.Event, logger *zerolog.Logger) bool {
	if m.Type != MarkerEvent {
		return true
	}

	var ok bool
	switch m.EventType {
	case EventBeginCast:
		bc, isType := ev.(*events.BeginCast)
		if !isType {
			return m.wrongShape(ev, logger)
		}
		ok = m.AbilityID != nil && bc.Ability.GUID == *m.AbilityID
	case EventCast:
		c, isType := ev.(*events.Cast)
		if !isType {
			return m.wrongShape(ev, logger)
		}
		ok = m.AbilityID != nil && c.Ability.GUID == *m.AbilityID
	case EventDeath:
		d, isType := ev.(*events.Death)
		if !isType {
			return m.wrongShape(ev, logger)
		}
		id, known := d.TargetActorID()
		ok = known && m.TargetID != nil && id == *m.TargetID
	default:
		return false
	}

	if ok {
		logger.Trace().Stringer("marker", m).Str("kind", string(ev.Kind())).Msg("Accepted event as match for marker")
	} else {
		logger.Trace().Stringer("marker", m).Str("kind", string(ev.Kind())).Msg("Discarded event due to non-matching data")
	}
	return ok
}

func (m Marker) wrongShape(ev events.Event, logger *zerolog.Logger) bool {
	logger.Trace().Stringer("marker", m).Str("kind", string(ev.Kind())).
		Str("expected", string(m.EventType)).Msg("Discarded event with non-matching type")
	return false
}

// Find searches [start, end) of a report for the event the marker identifies. It returns nil and
// no error when the window holds no such event. Events are pulled one at a time and the search
// stops at the first accepted match.
func Find(ctx context.Context, source fflogs.Source, reportCode string, marker Marker, start, end uint64) (events.Event, error) {
	logger := zerolog.Ctx(ctx)
	view, window := marker.Query(start, end)
	stream := eventlog.NewStream(source, view, reportCode, window)

	switch marker.Type {
	case MarkerFightStart:
		ev, err := stream.Next(ctx)
		if err == eventlog.Done {
			return nil, nil
		}
		return ev, err

	case MarkerEvent:
		skip := marker.instance()
		for {
			ev, err := stream.Next(ctx)
			if err == eventlog.Done {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			if !marker.matches(ev, logger) {
				continue
			}
			if skip > 0 {
				skip--
				logger.Trace().Stringer("marker", marker).Int32("remaining", skip).Msg("Skipped matching event")
				continue
			}
			return ev, nil
		}
	}

	return nil, fmt.Errorf("unsupported marker type %q", marker.Type)
}
