package stats

import (
	"encoding/json"
	"math"

	mstats "github.com/montanaflynn/stats"

	"fightprog/internal/phases"
)

// PhaseStatistics aggregates one phase over every pull of a report. ClearRate is NaN when the phase
// was never seen.
type PhaseStatistics struct {
	Name          string
	TotalTimeSecs float64
	ClearRate     float64
	SeenRate      float64
	SeenCount     int
	ClearedCount  int
	MedianSecs    float64
	P90Secs       float64
}

// Seen reports whether any pull reached the phase.
func (p PhaseStatistics) Seen() bool { return p.SeenCount > 0 }

func (p PhaseStatistics) MarshalJSON() ([]byte, error) {
	out := struct {
		Name          string   `json:"name"`
		TotalTimeSecs float64  `json:"total_time_secs"`
		ClearRate     *float64 `json:"clear_rate"`
		SeenRate      float64  `json:"seen_rate"`
		SeenCount     int      `json:"seen_count"`
		ClearedCount  int      `json:"cleared_count"`
		MedianSecs    float64  `json:"median_secs"`
		P90Secs       float64  `json:"p90_secs"`
	}{
		Name:          p.Name,
		TotalTimeSecs: p.TotalTimeSecs,
		SeenRate:      p.SeenRate,
		SeenCount:     p.SeenCount,
		ClearedCount:  p.ClearedCount,
		MedianSecs:    p.MedianSecs,
		P90Secs:       p.P90Secs,
	}
	if p.Seen() {
		rate := p.ClearRate
		out.ClearRate = &rate
	}
	return json.Marshal(out)
}

// ReportSummary aggregates every pull of one encounter in a report.
type ReportSummary struct {
	Encounter           string            `json:"encounter,omitempty"`
	Phases              []PhaseStatistics `json:"phases"`
	PullCount           int               `json:"pull_count"`
	AverageDurationSecs float64           `json:"average_duration_secs"`
	TotalTimeSecs       float64           `json:"total_time_secs"`
}

// Summarise aggregates pulls of the same encounter. The phase list of the first pull drives the
// per-phase statistics. No pulls yields a zero summary.
func Summarise(fights []FightStatistics) ReportSummary {
	if len(fights) == 0 {
		return ReportSummary{Phases: []PhaseStatistics{}}
	}

	pulls := float64(len(fights))
	defs := fights[0].Encounter.Phases
	summary := ReportSummary{
		Encounter: fights[0].Encounter.Name,
		Phases:    make([]PhaseStatistics, 0, len(defs)),
		PullCount: len(fights),
	}

	for _, def := range defs {
		ps := PhaseStatistics{Name: def.Name}
		var durations []float64
		for _, fight := range fights {
			prog, ok := fight.Phase(def.Name)
			if !ok {
				continue
			}
			ps.SeenCount++
			ps.TotalTimeSecs += prog.DurationSecs
			durations = append(durations, prog.DurationSecs)
			if prog.Status == phases.Clear {
				ps.ClearedCount++
			}
		}

		ps.SeenRate = float64(ps.SeenCount) / pulls
		if ps.SeenCount == 0 {
			ps.ClearRate = math.NaN()
		} else {
			ps.ClearRate = float64(ps.ClearedCount) / float64(ps.SeenCount)
			ps.MedianSecs, _ = mstats.Median(durations)
			ps.P90Secs, _ = mstats.Percentile(durations, 90)
		}
		summary.Phases = append(summary.Phases, ps)
	}

	for _, fight := range fights {
		summary.TotalTimeSecs += fight.DurationSecs
	}
	summary.AverageDurationSecs = summary.TotalTimeSecs / pulls

	return summary
}
