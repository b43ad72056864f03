// Package phases resolves the named phases of an encounter inside a single fight.
package phases

import (
	"fmt"
	"sort"
	"strings"

	"fightprog/internal/fflogs"
)

// MarkerType distinguishes the two kinds of phase marker.
type MarkerType string

const (
	MarkerFightStart MarkerType = "fightStart"
	MarkerEvent      MarkerType = "event"
)

// EventType is the event shape an event marker matches.
type EventType string

const (
	EventBeginCast EventType = "BeginCast"
	EventCast      EventType = "Cast"
	EventDeath     EventType = "Death"
)

// Marker identifies the event that begins or ends a phase. A fightStart marker matches the first
// event of the search window; an event marker matches a cast of AbilityID or the death of TargetID.
type Marker struct {
	Type      MarkerType `toml:"type" json:"type" validate:"required,oneof=fightStart event"`
	EventType EventType  `toml:"evType,omitempty" json:"evType,omitempty"`

	AbilityID *int64 `toml:"abilityId,omitempty" json:"abilityId,omitempty"`
	TargetID  *int64 `toml:"targetId,omitempty" json:"targetId,omitempty"`

	// InstanceNo is the number of matching events to skip before accepting one.
	InstanceNo *int32            `toml:"instanceNo,omitempty" json:"instanceNo,omitempty" validate:"omitempty,min=0"`
	Hostility  *fflogs.Hostility `toml:"eventHostility,omitempty" json:"eventHostility,omitempty" validate:"omitempty,oneof=0 1"`
}

func (m Marker) instance() int32 {
	if m.InstanceNo == nil {
		return 0
	}
	return *m.InstanceNo
}

func (m Marker) hostility() fflogs.Hostility {
	if m.Hostility == nil {
		return fflogs.Hostile
	}
	return *m.Hostility
}

func (m Marker) String() string {
	if m.Type != MarkerEvent {
		return string(m.Type)
	}

	var b strings.Builder
	b.WriteString(string(m.EventType))
	b.WriteString("(")
	switch m.EventType {
	case EventDeath:
		if m.TargetID != nil {
			fmt.Fprintf(&b, "target=%d", *m.TargetID)
		}
	default:
		if m.AbilityID != nil {
			fmt.Fprintf(&b, "ability=%d", *m.AbilityID)
		}
	}
	if n := m.instance(); n > 0 {
		fmt.Fprintf(&b, ", instance=%d", n)
	}
	b.WriteString(")")
	return b.String()
}

// Definition is one named phase of an encounter. A nil StartMarker means the phase begins where
// the previous one ended; a nil EndMarker means its end is inferred.
type Definition struct {
	Name        string  `toml:"name" json:"name" validate:"required"`
	StartMarker *Marker `toml:"startMarker,omitempty" json:"startMarker,omitempty"`
	EndMarker   *Marker `toml:"endMarker,omitempty" json:"endMarker,omitempty"`
}

// Encounter is the ordered phase list for one fight name.
type Encounter struct {
	Name   string       `toml:"name" json:"name" validate:"required"`
	Phases []Definition `toml:"phase" json:"phases" validate:"required,min=1,unique=Name,dive"`
}

// Index is the position of the named phase, or -1.
func (e Encounter) Index(phase string) int {
	for i, def := range e.Phases {
		if def.Name == phase {
			return i
		}
	}
	return -1
}

// Collection holds the phase definitions of every known encounter. It is read-only once built and
// safe for concurrent use.
type Collection struct {
	encounters map[string]Encounter
}

// NewCollection validates each encounter and indexes it by name.
func NewCollection(encounters ...Encounter) (*Collection, error) {
	c := &Collection{encounters: make(map[string]Encounter, len(encounters))}
	for _, enc := range encounters {
		if err := enc.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.encounters[enc.Name]; dup {
			return nil, fmt.Errorf("duplicate phase definitions for %q", enc.Name)
		}
		c.encounters[enc.Name] = enc
	}
	return c, nil
}

// Get returns the encounter for an exact fight name. The returned Phases slice is shared with the
// collection and must not be modified.
func (c *Collection) Get(name string) (Encounter, bool) {
	if c == nil {
		return Encounter{}, false
	}
	enc, ok := c.encounters[name]
	return enc, ok
}

// Names lists the known encounters in alphabetical order.
func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.encounters))
	for name := range c.encounters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.encounters)
}
