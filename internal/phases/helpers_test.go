package phases

import (
	"fightprog/internal/events"
)

func ptr[T any](v T) *T { return &v }

func summaryEv(ts uint64) events.Event {
	return &events.LimitBreakUpdate{Header: events.Header{Time: ts}, Value: 0, Bars: 3}
}

func beginCast(ts uint64, ability int64) events.Event {
	return &events.BeginCast{Header: events.Header{Time: ts}, Ability: events.Ability{GUID: ability}}
}

func cast(ts uint64, ability int64) events.Event {
	return &events.Cast{Header: events.Header{Time: ts}, Ability: events.Ability{GUID: ability}}
}

func death(ts uint64, target int64) events.Event {
	return &events.Death{Header: events.Header{Time: ts}, Actors: events.Actors{TargetID: &target}}
}

func fightStartMarker() *Marker { return &Marker{Type: MarkerFightStart} }

func castMarker(kind EventType, ability int64, instance int32) *Marker {
	m := &Marker{Type: MarkerEvent, EventType: kind, AbilityID: &ability}
	if instance > 0 {
		m.InstanceNo = &instance
	}
	return m
}

func deathMarker(target int64) *Marker {
	return &Marker{Type: MarkerEvent, EventType: EventDeath, TargetID: &target}
}
