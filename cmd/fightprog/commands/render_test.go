package commands

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fightprog/internal/phases"
	"fightprog/internal/stats"
)

func TestRenderSummary(t *testing.T) {
	out := renderSummary("aBcDeFgHiJkLmNoP", stats.ReportSummary{
		Encounter:           "Dragonsong's Reprise",
		PullCount:           3,
		AverageDurationSecs: 11.7,
		TotalTimeSecs:       35,
		Phases: []stats.PhaseStatistics{
			{Name: "P1", SeenCount: 3, ClearedCount: 2, ClearRate: 2.0 / 3, TotalTimeSecs: 20, MedianSecs: 6, P90Secs: 8},
			{Name: "P3", ClearRate: math.NaN()},
		},
	})

	assert.Contains(t, out, "Dragonsong's Reprise")
	assert.Contains(t, out, "https://www.fflogs.com/reports/aBcDeFgHiJkLmNoP")
	assert.Contains(t, out, "3 pulls, 11.7s on average, 35.0s in total")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "never seen")
	assert.NotContains(t, out, "NaN")
}

func TestRenderFight(t *testing.T) {
	start := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	out := renderFight(stats.FightStatistics{
		FightID:      4,
		FightName:    "The Omega Protocol",
		Start:        &start,
		DurationSecs: 95,
		Progress: []phases.Progress{
			{PhaseName: "Omega", DurationSecs: 60, Status: phases.Clear},
			{PhaseName: "Omega-M/F", DurationSecs: 35, Status: phases.Wiped},
		},
	})

	assert.Contains(t, out, "The Omega Protocol #4")
	assert.Contains(t, out, "2024-05-01 20:00:00 UTC")
	assert.Contains(t, out, "Clear")
	assert.Contains(t, out, "Wiped")

	assert.Contains(t, renderFight(stats.FightStatistics{FightName: "x"}), "no phase was reached")
}

func TestDescribeMarkers(t *testing.T) {
	ability := int64(7)
	got := describeMarkers(phases.Definition{
		Name:        "P2",
		StartMarker: &phases.Marker{Type: phases.MarkerEvent, EventType: phases.EventCast, AbilityID: &ability},
	})
	assert.Equal(t, "start: Cast(ability=7)", got)
}
