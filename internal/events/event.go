package events

// Kind is the wire discriminant of a combat-log event (the "type" field of an FFLogs event).
type Kind string

const (
	KindCalculatedDamage  Kind = "calculateddamage"
	KindDamage            Kind = "damage"
	KindCalculatedHeal    Kind = "calculatedheal"
	KindHeal              Kind = "heal"
	KindBeginCast         Kind = "begincast"
	KindCast              Kind = "cast"
	KindApplyBuff         Kind = "applybuff"
	KindRefreshBuff       Kind = "refreshbuff"
	KindApplyBuffStack    Kind = "applybuffstack"
	KindRemoveBuff        Kind = "removebuff"
	KindRemoveBuffStack   Kind = "removebuffstack"
	KindApplyDebuff       Kind = "applydebuff"
	KindRefreshDebuff     Kind = "refreshdebuff"
	KindApplyDebuffStack  Kind = "applydebuffstack"
	KindRemoveDebuff      Kind = "removedebuff"
	KindRemoveDebuffStack Kind = "removedebuffstack"
	KindDeath             Kind = "death"
	KindLimitBreakUpdate  Kind = "limitbreakupdate"
)

// Event is a single event fired during a report. The set of implementations is closed:
// *Damage, *Heal, *BeginCast, *Cast, *Aura, *Death, *LimitBreakUpdate and *Unrecognized.
type Event interface {
	Kind() Kind
	// Timestamp is the event time in milliseconds relative to the report start.
	// It reports false only for *Unrecognized.
	Timestamp() (uint64, bool)
	event()
}

// Header carries the fields every recognized event has.
type Header struct {
	Time uint64 `json:"timestamp"`
}

func (h Header) Timestamp() (uint64, bool) { return h.Time, true }

func (Header) event() {}

// Actors holds the source and target of an event. Either side may be identified by a bare ID
// or by an embedded actor object.
type Actors struct {
	SourceID         *int64     `json:"sourceID,omitempty"`
	Source           *Actor     `json:"source,omitempty"`
	SourceIsFriendly bool       `json:"sourceIsFriendly"`
	SourceResources  *Resources `json:"sourceResources,omitempty"`

	TargetID         *int64     `json:"targetID,omitempty"`
	Target           *Actor     `json:"target,omitempty"`
	TargetIsFriendly bool       `json:"targetIsFriendly"`
	TargetResources  *Resources `json:"targetResources,omitempty"`
}

// SourceActorID returns the explicit source ID, falling back to the embedded actor's GUID.
func (a Actors) SourceActorID() (int64, bool) {
	return actorID(a.SourceID, a.Source)
}

// TargetActorID returns the explicit target ID, falling back to the embedded actor's GUID.
func (a Actors) TargetActorID() (int64, bool) {
	return actorID(a.TargetID, a.Target)
}

func actorID(id *int64, actor *Actor) (int64, bool) {
	if id != nil {
		return *id, true
	}
	if actor != nil {
		return actor.GUID, true
	}
	return 0, false
}

// Actor is an in-game character or NPC.
type Actor struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
	GUID int64  `json:"guid"`
	Type string `json:"type"`
	Icon string `json:"icon,omitempty"`
}

// Ability describes an ability or aura referenced by an event.
type Ability struct {
	Name string `json:"name"`
	GUID int64  `json:"guid"`
	Type int64  `json:"type"`
	Icon string `json:"abilityIcon,omitempty"`
}

// Resources is an actor's resource snapshot at the time of an event.
type Resources struct {
	HitPoints    *int64 `json:"hitPoints,omitempty"`
	MaxHitPoints *int64 `json:"maxHitPoints,omitempty"`
	MP           *int64 `json:"mp,omitempty"`
	MaxMP        *int64 `json:"maxMP,omitempty"`
	TP           *int64 `json:"tp,omitempty"`
	MaxTP        *int64 `json:"maxTP,omitempty"`
	X            *int64 `json:"x,omitempty"`
	Y            *int64 `json:"y,omitempty"`
	Facing       *int64 `json:"facing,omitempty"`
	Absorb       *int64 `json:"absorb,omitempty"`
}

// Damage is fired when damage is applied, or when it has snapshot but not landed yet
// (Calculated).
type Damage struct {
	Header
	Actors
	Calculated bool `json:"-"`

	Ability         Ability  `json:"ability"`
	HitType         *int64   `json:"hitType,omitempty"`
	Amount          *int64   `json:"amount,omitempty"`
	Absorbed        *int64   `json:"absorbed,omitempty"`
	Multistrike     *bool    `json:"multistrike,omitempty"`
	DebugMultiplier *float64 `json:"debugMultiplier,omitempty"`
	PacketID        *int64   `json:"packetID,omitempty"`
}

func (e *Damage) Kind() Kind {
	if e.Calculated {
		return KindCalculatedDamage
	}
	return KindDamage
}

// Heal is fired when a heal lands, or when its amount is calculated (Calculated).
type Heal struct {
	Header
	Actors
	Calculated bool `json:"-"`

	Ability         Ability  `json:"ability"`
	HitType         *int64   `json:"hitType,omitempty"`
	Amount          *int64   `json:"amount,omitempty"`
	Overheal        *int64   `json:"overheal,omitempty"`
	DebugMultiplier *float64 `json:"debugMultiplier,omitempty"`
	PacketID        *int64   `json:"packetID,omitempty"`
}

func (e *Heal) Kind() Kind {
	if e.Calculated {
		return KindCalculatedHeal
	}
	return KindHeal
}

// BeginCast is fired when an actor starts casting.
type BeginCast struct {
	Header
	Actors

	Ability         Ability  `json:"ability"`
	DebugMultiplier *float64 `json:"debugMultiplier,omitempty"`
	PacketID        *int64   `json:"packetID,omitempty"`
}

func (e *BeginCast) Kind() Kind { return KindBeginCast }

// Cast is fired when a cast completes.
type Cast struct {
	Header
	Actors

	Ability         Ability  `json:"ability"`
	DebugMultiplier *float64 `json:"debugMultiplier,omitempty"`
	PacketID        *int64   `json:"packetID,omitempty"`
}

func (e *Cast) Kind() Kind { return KindCast }

// AuraAction is what happened to a buff or debuff.
type AuraAction string

const (
	AuraApply       AuraAction = "apply"
	AuraRefresh     AuraAction = "refresh"
	AuraApplyStack  AuraAction = "applystack"
	AuraRemove      AuraAction = "remove"
	AuraRemoveStack AuraAction = "removestack"
)

// Aura covers the buff and debuff family: applied, refreshed, stacked, removed.
// Stack is only set for the stack variants.
type Aura struct {
	Header
	Actors
	Action AuraAction `json:"-"`
	Debuff bool       `json:"-"`

	Ability         Ability  `json:"ability"`
	Stack           *int64   `json:"stack,omitempty"`
	DebugMultiplier *float64 `json:"debugMultiplier,omitempty"`
	PacketID        *int64   `json:"packetID,omitempty"`
}

var auraKinds = map[AuraAction][2]Kind{
	AuraApply:       {KindApplyBuff, KindApplyDebuff},
	AuraRefresh:     {KindRefreshBuff, KindRefreshDebuff},
	AuraApplyStack:  {KindApplyBuffStack, KindApplyDebuffStack},
	AuraRemove:      {KindRemoveBuff, KindRemoveDebuff},
	AuraRemoveStack: {KindRemoveBuffStack, KindRemoveDebuffStack},
}

func (e *Aura) Kind() Kind {
	kinds, ok := auraKinds[e.Action]
	if !ok {
		kinds = auraKinds[AuraApply]
	}
	if e.Debuff {
		return kinds[1]
	}
	return kinds[0]
}

// Death is fired when an actor dies.
type Death struct {
	Header
	Actors

	Ability        *Ability `json:"ability,omitempty"`
	KillerID       *int64   `json:"killerID,omitempty"`
	KillingAbility *Ability `json:"killingAbility,omitempty"`
}

func (e *Death) Kind() Kind { return KindDeath }

// LimitBreakUpdate is fired when the party's limit break gauge changes.
type LimitBreakUpdate struct {
	Header

	Value int32 `json:"value"`
	Bars  int32 `json:"bars"`
}

func (e *LimitBreakUpdate) Kind() Kind { return KindLimitBreakUpdate }

// Unrecognized keeps an event whose type is unknown or whose body could not be decoded.
// Raw is the original JSON object.
type Unrecognized struct {
	Type string
	Raw  []byte
}

func (e *Unrecognized) Kind() Kind { return Kind(e.Type) }

func (e *Unrecognized) Timestamp() (uint64, bool) { return 0, false }

func (*Unrecognized) event() {}
