package stats

import (
	"math"
	"time"

	"fightprog/internal/fflogs"
	"fightprog/internal/phases"
)

// FightStatistics is the analysed outcome of one pull. Encounter shares its phase list with the
// definition collection.
type FightStatistics struct {
	ReportCode   string            `json:"report"`
	FightID      int64             `json:"fight_id"`
	FightName    string            `json:"fight_name"`
	Start        *time.Time        `json:"start,omitempty"`
	End          *time.Time        `json:"end,omitempty"`
	DurationSecs float64           `json:"duration_secs"`
	Progress     []phases.Progress `json:"progress"`
	Encounter    phases.Encounter  `json:"-"`
}

// NewFightStatistics builds the statistics of a fight from its classified phases. Fight times
// are relative to reportStart, the report's wall-clock start in epoch milliseconds.
func NewFightStatistics(reportCode string, fight fflogs.FightSummary, reportStart uint64, encounter phases.Encounter, progress []phases.Progress) FightStatistics {
	return FightStatistics{
		ReportCode:   reportCode,
		FightID:      fight.ID,
		FightName:    encounter.Name,
		Start:        wallClock(reportStart, fight.StartTime),
		End:          wallClock(reportStart, fight.EndTime),
		DurationSecs: float64(fight.Duration()) / 1000,
		Progress:     progress,
		Encounter:    encounter,
	}
}

func wallClock(reportStart, offset uint64) *time.Time {
	millis := reportStart + offset
	if millis < reportStart || millis > math.MaxInt64 {
		return nil
	}
	t := time.UnixMilli(int64(millis)).UTC()
	return &t
}

// Phase returns the progress entry for the named phase, if the fight reached it.
func (f FightStatistics) Phase(name string) (phases.Progress, bool) {
	for _, p := range f.Progress {
		if p.PhaseName == name {
			return p, true
		}
	}
	return phases.Progress{}, false
}

// Furthest is the last phase the fight reached, or false when it reached none.
func (f FightStatistics) Furthest() (phases.Progress, bool) {
	if len(f.Progress) == 0 {
		return phases.Progress{}, false
	}
	return f.Progress[len(f.Progress)-1], true
}
