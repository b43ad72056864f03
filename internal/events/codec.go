package events

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Decode parses a single event object. An unknown "type" yields *Unrecognized without error;
// a known type with a malformed body returns an error.
func Decode(data []byte) (Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to read event type: %w", err)
	}

	var ev Event
	switch Kind(head.Type) {
	case KindDamage, KindCalculatedDamage:
		ev = &Damage{Calculated: Kind(head.Type) == KindCalculatedDamage}
	case KindHeal, KindCalculatedHeal:
		ev = &Heal{Calculated: Kind(head.Type) == KindCalculatedHeal}
	case KindBeginCast:
		ev = &BeginCast{}
	case KindCast:
		ev = &Cast{}
	case KindDeath:
		ev = &Death{}
	case KindLimitBreakUpdate:
		ev = &LimitBreakUpdate{}
	default:
		aura, ok := auraFromKind(Kind(head.Type))
		if !ok {
			return &Unrecognized{Type: head.Type, Raw: append([]byte(nil), data...)}, nil
		}
		ev = aura
	}

	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", head.Type, err)
	}
	return ev, nil
}

func auraFromKind(kind Kind) (*Aura, bool) {
	for action, kinds := range auraKinds {
		if kinds[0] == kind {
			return &Aura{Action: action}, true
		}
		if kinds[1] == kind {
			return &Aura{Action: action, Debuff: true}, true
		}
	}
	return nil, false
}

// List is a batch of events as delivered in a page. Decoding never fails on a single bad
// element: an unknown type becomes *Unrecognized, a known type with a malformed body is
// skipped. Both are logged.
type List []Event

func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(List, 0, len(raw))
	for i, item := range raw {
		ev, err := Decode(item)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping undecodable event")
			continue
		}
		if u, ok := ev.(*Unrecognized); ok {
			log.Warn().Str("type", u.Type).Int("index", i).Msg("Unknown event type in events list")
		}
		out = append(out, ev)
	}
	*l = out
	return nil
}

// tagged marshals v as a JSON object and prepends the "type" discriminant.
func tagged(kind Kind, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	typ, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(body)+len(typ)+9)
	out = append(out, `{"type":`...)
	out = append(out, typ...)
	if len(body) > 2 {
		out = append(out, ',')
		out = append(out, body[1:]...)
	} else {
		out = append(out, '}')
	}
	return out, nil
}

func (e Damage) MarshalJSON() ([]byte, error) {
	type plain Damage
	return tagged(e.Kind(), plain(e))
}

func (e Heal) MarshalJSON() ([]byte, error) {
	type plain Heal
	return tagged(e.Kind(), plain(e))
}

func (e BeginCast) MarshalJSON() ([]byte, error) {
	type plain BeginCast
	return tagged(KindBeginCast, plain(e))
}

func (e Cast) MarshalJSON() ([]byte, error) {
	type plain Cast
	return tagged(KindCast, plain(e))
}

func (e Aura) MarshalJSON() ([]byte, error) {
	type plain Aura
	return tagged(e.Kind(), plain(e))
}

func (e Death) MarshalJSON() ([]byte, error) {
	type plain Death
	return tagged(KindDeath, plain(e))
}

func (e LimitBreakUpdate) MarshalJSON() ([]byte, error) {
	type plain LimitBreakUpdate
	return tagged(KindLimitBreakUpdate, plain(e))
}

func (e Unrecognized) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}
	return tagged(Kind(e.Type), struct{}{})
}
