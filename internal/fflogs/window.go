package fflogs

import (
	"net/url"
	"strconv"
)

// Window is the half-open time range [Start, End) in milliseconds relative to the report start,
// plus the optional filters the events endpoint understands.
type Window struct {
	Start uint64
	End   uint64

	Hostility      *Hostility
	SourceID       *int64
	SourceInstance *int64
	SourceClass    string
	TargetID       *int64
	TargetInstance *int64
	TargetClass    string
	AbilityID      *int64
	Death          *int64
	Options        *int64
	Cutoff         *int64
	Encounter      *int64
	Wipes          *int64
	Difficulty     *int64
	Filter         string
	Translate      *bool
}

// Contains reports whether ts lies inside [Start, End).
func (w Window) Contains(ts uint64) bool {
	return ts >= w.Start && ts < w.End
}

// WithStart returns a copy of the window resuming at start.
func (w Window) WithStart(start uint64) Window {
	w.Start = start
	return w
}

// Values encodes the window as query parameters. The API key is not part of it.
func (w Window) Values() url.Values {
	params := url.Values{}
	params.Set("start", strconv.FormatUint(w.Start, 10))
	params.Set("end", strconv.FormatUint(w.End, 10))

	if w.Hostility != nil {
		params.Set("hostility", strconv.Itoa(int(*w.Hostility)))
	}
	setInt(params, "sourceid", w.SourceID)
	setInt(params, "sourceinstance", w.SourceInstance)
	setString(params, "sourceclass", w.SourceClass)
	setInt(params, "targetid", w.TargetID)
	setInt(params, "targetinstance", w.TargetInstance)
	setString(params, "targetclass", w.TargetClass)
	setInt(params, "abilityid", w.AbilityID)
	setInt(params, "death", w.Death)
	setInt(params, "options", w.Options)
	setInt(params, "cutoff", w.Cutoff)
	setInt(params, "encounter", w.Encounter)
	setInt(params, "wipes", w.Wipes)
	setInt(params, "difficulty", w.Difficulty)
	setString(params, "filter", w.Filter)
	if w.Translate != nil {
		params.Set("translate", strconv.FormatBool(*w.Translate))
	}
	return params
}

func setInt(params url.Values, key string, v *int64) {
	if v != nil {
		params.Set(key, strconv.FormatInt(*v, 10))
	}
}

func setString(params url.Values, key, v string) {
	if v != "" {
		params.Set(key, v)
	}
}
