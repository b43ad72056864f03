package stats

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fightprog/internal/fflogs"
	"fightprog/internal/phases"
)

func encounter(names ...string) phases.Encounter {
	defs := make([]phases.Definition, 0, len(names))
	for _, n := range names {
		defs = append(defs, phases.Definition{Name: n})
	}
	return phases.Encounter{Name: "Test Encounter", Phases: defs}
}

func pull(enc phases.Encounter, duration float64, progress ...phases.Progress) FightStatistics {
	return FightStatistics{FightName: enc.Name, DurationSecs: duration, Progress: progress, Encounter: enc}
}

func prog(name string, secs float64, status phases.ClearedStatus) phases.Progress {
	return phases.Progress{PhaseName: name, DurationSecs: secs, Status: status}
}

func threePulls() []FightStatistics {
	enc := encounter("P1", "P2", "P3")
	return []FightStatistics{
		pull(enc, 10, prog("P1", 10, phases.Clear)),
		pull(enc, 17, prog("P1", 12, phases.Clear), prog("P2", 5, phases.Wiped)),
		pull(enc, 8, prog("P1", 8, phases.Clear)),
	}
}

func TestSummarise_Aggregates(t *testing.T) {
	s := Summarise(threePulls())

	assert.Equal(t, "Test Encounter", s.Encounter)
	assert.Equal(t, 3, s.PullCount)
	assert.InDelta(t, 35.0, s.TotalTimeSecs, 1e-9)
	assert.InDelta(t, 35.0/3, s.AverageDurationSecs, 1e-9)
	require.Len(t, s.Phases, 3)

	p1 := s.Phases[0]
	assert.Equal(t, "P1", p1.Name)
	assert.Equal(t, 3, p1.SeenCount)
	assert.InDelta(t, 1.0, p1.SeenRate, 1e-9)
	assert.InDelta(t, 30.0, p1.TotalTimeSecs, 1e-9)
	assert.InDelta(t, 1.0, p1.ClearRate, 1e-9)
	assert.InDelta(t, 10.0, p1.MedianSecs, 1e-9)
	assert.GreaterOrEqual(t, p1.P90Secs, p1.MedianSecs)
	assert.LessOrEqual(t, p1.P90Secs, 12.0)

	p2 := s.Phases[1]
	assert.Equal(t, 1, p2.SeenCount)
	assert.InDelta(t, 1.0/3, p2.SeenRate, 1e-9)
	assert.InDelta(t, 5.0, p2.TotalTimeSecs, 1e-9)
	assert.InDelta(t, 0.0, p2.ClearRate, 1e-9)
	assert.InDelta(t, 5.0, p2.MedianSecs, 1e-9)
	assert.InDelta(t, 5.0, p2.P90Secs, 1e-9)

	p3 := s.Phases[2]
	assert.Equal(t, 0, p3.SeenCount)
	assert.False(t, p3.Seen())
	assert.True(t, math.IsNaN(p3.ClearRate))
	assert.Zero(t, p3.SeenRate)
}

func TestSummarise_Empty(t *testing.T) {
	s := Summarise(nil)
	assert.Equal(t, 0, s.PullCount)
	assert.Zero(t, s.AverageDurationSecs)
	assert.Zero(t, s.TotalTimeSecs)
	assert.Empty(t, s.Phases)
	assert.Equal(t, "Total pulls: 0 with average duration 0.0s.\nA total of 0.0s was spent in battle with individual phase progress as follows: \n", s.String())
}

func TestSummarise_UsesFirstPullDefinitions(t *testing.T) {
	first := encounter("Only")
	other := encounter("Only", "Extra")
	s := Summarise([]FightStatistics{
		pull(first, 5, prog("Only", 5, phases.Unknown)),
		pull(other, 5, prog("Only", 2, phases.Clear), prog("Extra", 3, phases.Wiped)),
	})

	require.Len(t, s.Phases, 1)
	assert.InDelta(t, 0.5, s.Phases[0].ClearRate, 1e-9)
}

func TestReportSummary_String(t *testing.T) {
	want := "Total pulls: 3 with average duration 11.7s.\n" +
		"A total of 35.0s was spent in battle with individual phase progress as follows: \n" +
		"**P1**:\nA total of 30.0s was spent practicing this phase, with a clear rate of 100.0%.\nThis phase was seen 3 times (100.0% of pulls)\n" +
		"**P2**:\nA total of 5.0s was spent practicing this phase, with a clear rate of 0.0%.\nThis phase was seen 1 times (33.3% of pulls)\n" +
		"**P3**: This phase was never seen.\n"

	assert.Equal(t, want, Summarise(threePulls()).String())
}

func TestPhaseStatistics_JSONNeverSeen(t *testing.T) {
	s := Summarise(threePulls())

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded struct {
		Phases []struct {
			Name      string   `json:"name"`
			ClearRate *float64 `json:"clear_rate"`
		} `json:"phases"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Phases, 3)
	require.NotNil(t, decoded.Phases[0].ClearRate)
	assert.InDelta(t, 1.0, *decoded.Phases[0].ClearRate, 1e-9)
	assert.Nil(t, decoded.Phases[2].ClearRate)
}

func TestNewFightStatistics(t *testing.T) {
	name := "Dragonsong's Reprise"
	enc := encounter("P1")
	enc.Name = name
	fight := fflogs.FightSummary{ID: 4, Name: &name, StartTime: 1000, EndTime: 91000}
	progress := []phases.Progress{prog("P1", 90, phases.Unknown)}

	fs := NewFightStatistics("aBcDeFgHiJkLmNoP", fight, 1650000000000, enc, progress)

	assert.Equal(t, int64(4), fs.FightID)
	assert.Equal(t, name, fs.FightName)
	assert.InDelta(t, 90.0, fs.DurationSecs, 1e-9)
	require.NotNil(t, fs.Start)
	require.NotNil(t, fs.End)
	assert.Equal(t, time.UnixMilli(1650000001000).UTC(), *fs.Start)
	assert.Equal(t, 90*time.Second, fs.End.Sub(*fs.Start))
	assert.Same(t, &enc.Phases[0], &fs.Encounter.Phases[0])

	furthest, ok := fs.Furthest()
	require.True(t, ok)
	assert.Equal(t, "P1", furthest.PhaseName)
}

func TestNewFightStatistics_OverflowingTimes(t *testing.T) {
	fight := fflogs.FightSummary{StartTime: math.MaxUint64, EndTime: math.MaxUint64}
	fs := NewFightStatistics("code", fight, 10, encounter("P1"), nil)
	assert.Nil(t, fs.Start)
	assert.Nil(t, fs.End)

	_, ok := fs.Furthest()
	assert.False(t, ok)
}
