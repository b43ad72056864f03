package phases

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateMarker, Marker{})
	return v
}

// validateMarker enforces the fields each marker kind needs.
func validateMarker(sl validator.StructLevel) {
	m := sl.Current().Interface().(Marker)

	switch m.Type {
	case MarkerFightStart:
		if m.EventType != "" {
			sl.ReportError(m.EventType, "evType", "EventType", "excluded_if", "type fightStart")
		}
	case MarkerEvent:
		switch m.EventType {
		case EventBeginCast, EventCast:
			if m.AbilityID == nil {
				sl.ReportError(m.AbilityID, "abilityId", "AbilityID", "required_if", "evType "+string(m.EventType))
			}
		case EventDeath:
			if m.TargetID == nil {
				sl.ReportError(m.TargetID, "targetId", "TargetID", "required_if", "evType Death")
			}
		default:
			sl.ReportError(m.EventType, "evType", "EventType", "oneof", "BeginCast Cast Death")
		}
	}
}

// Validate checks an encounter definition before it is used for analysis.
func (e Encounter) Validate() error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (%s)", fe.Param())
		}
		msgs = append(msgs, msg)
	}
	name := e.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Errorf("invalid phase definitions for %s: %s", name, strings.Join(msgs, "; "))
}
