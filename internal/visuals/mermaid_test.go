package visuals

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"fightprog/internal/phases"
	"fightprog/internal/stats"
)

func sampleSummary() stats.ReportSummary {
	return stats.ReportSummary{
		Encounter: "Dragonsong's Reprise",
		PullCount: 3,
		Phases: []stats.PhaseStatistics{
			{Name: "Adelphel", SeenCount: 3, ClearedCount: 2, ClearRate: 2.0 / 3, MedianSecs: 100, P90Secs: 120},
			{Name: "Thordan \"King\"", SeenCount: 2, ClearedCount: 1, ClearRate: 0.5, MedianSecs: 150, P90Secs: 160},
			{Name: "Nidhogg", ClearRate: math.NaN()},
		},
	}
}

func TestGenerateClearRateChart(t *testing.T) {
	chart := GenerateClearRateChart(sampleSummary())

	assert.True(t, strings.HasPrefix(chart, "```mermaid\nxychart-beta\n"))
	assert.Contains(t, chart, `x-axis ["Adelphel", "Thordan 'King'", "Nidhogg"]`)
	assert.Contains(t, chart, "bar [66.7, 50.0, 0.0]")
	assert.NotContains(t, chart, "NaN")

	assert.Empty(t, GenerateClearRateChart(stats.ReportSummary{}))
}

func TestGeneratePhaseDurationChart(t *testing.T) {
	chart := GeneratePhaseDurationChart(sampleSummary())

	assert.Contains(t, chart, `x-axis ["Adelphel", "Thordan 'King'"]`)
	assert.Contains(t, chart, "bar [100.0, 150.0]")
	assert.Contains(t, chart, "line [120.0, 160.0]")
	assert.Contains(t, chart, `y-axis "Seconds" 0 --> 192`)

	assert.Empty(t, GeneratePhaseDurationChart(stats.ReportSummary{Phases: []stats.PhaseStatistics{{Name: "P1"}}}))
}

func TestGenerateWipePie(t *testing.T) {
	fight := func(progress ...phases.Progress) stats.FightStatistics {
		return stats.FightStatistics{Progress: progress}
	}
	fights := []stats.FightStatistics{
		fight(phases.Progress{PhaseName: "P1", Status: phases.Wiped}),
		fight(phases.Progress{PhaseName: "P1", Status: phases.Clear}, phases.Progress{PhaseName: "P2", Status: phases.Unknown}),
		fight(phases.Progress{PhaseName: "P1", Status: phases.Wiped}),
		fight(phases.Progress{PhaseName: "P1", Status: phases.Clear}, phases.Progress{PhaseName: "P2", Status: phases.Clear}),
		fight(),
	}

	chart := GenerateWipePie(fights)
	assert.Equal(t, "```mermaid\npie title Pull Outcomes\n    \"Cleared\" : 1\n    \"Ended in P1\" : 2\n    \"Ended in P2\" : 1\n```", chart)

	assert.Empty(t, GenerateWipePie(nil))
}
