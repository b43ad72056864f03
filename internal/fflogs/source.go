package fflogs

import (
	"context"
)

// Source is the narrow view of the FFLogs API the analysis core depends on.
type Source interface {
	FetchPage(ctx context.Context, view View, reportCode string, window Window) (Page, error)
	FetchFights(ctx context.Context, reportCode string) (*FightList, error)
}

// View selects which family of events the events endpoint returns.
type View string

const (
	ViewSummary     View = "summary"
	ViewDamageDone  View = "damage-done"
	ViewDamageTaken View = "damage-taken"
	ViewHealing     View = "healing"
	ViewCasts       View = "casts"
	ViewSummons     View = "summons"
	ViewBuffs       View = "buffs"
	ViewDebuffs     View = "debuffs"
	ViewDeaths      View = "deaths"
	ViewThreat      View = "threat"
	ViewResources   View = "resources"
	ViewInterrupts  View = "interrupts"
	ViewDispels     View = "dispels"
)

func (v View) String() string { return string(v) }

// Hostility filters events by which side the actors are on.
type Hostility uint8

const (
	Friendly Hostility = 0
	Hostile  Hostility = 1
)

func (h Hostility) String() string {
	if h == Hostile {
		return "hostile"
	}
	return "friendly"
}
