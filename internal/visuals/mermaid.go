package visuals

import (
	"fmt"
	"math"
	"strings"

	"fightprog/internal/phases"
	"fightprog/internal/stats"
)

// GenerateClearRateChart creates a Mermaid bar chart of the clear rate of every phase. Phases that
// were never seen are charted at zero.
func GenerateClearRateChart(summary stats.ReportSummary) string {
	if summary.PullCount == 0 || len(summary.Phases) == 0 {
		return ""
	}

	var labels []string
	var values []string
	for _, p := range summary.Phases {
		labels = append(labels, label(p.Name))
		rate := 0.0
		if p.Seen() {
			rate = p.ClearRate * 100
		}
		values = append(values, fmt.Sprintf("%.1f", rate))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Phase Clear Rate\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Clear Rate (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GeneratePhaseDurationChart creates a Mermaid chart with the median time spent in each phase as
// bars and the 90th percentile as a line.
func GeneratePhaseDurationChart(summary stats.ReportSummary) string {
	var labels []string
	var medians []string
	var p90s []string
	maxVal := 0.0

	for _, p := range summary.Phases {
		if !p.Seen() {
			continue
		}
		labels = append(labels, label(p.Name))
		medians = append(medians, fmt.Sprintf("%.1f", p.MedianSecs))
		p90s = append(p90s, fmt.Sprintf("%.1f", p.P90Secs))
		maxVal = math.Max(maxVal, math.Max(p.MedianSecs, p.P90Secs))
	}
	if len(labels) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Time per Phase (Median and P90)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Seconds\" 0 --> %d\n", int(math.Ceil(math.Max(1, maxVal*1.2)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(medians, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(p90s, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateWipePie creates a Mermaid pie chart of where pulls ended: the furthest phase of each
// wipe, plus clears.
func GenerateWipePie(fights []stats.FightStatistics) string {
	if len(fights) == 0 {
		return ""
	}

	counts := make(map[string]int)
	var order []string
	cleared := 0
	for _, f := range fights {
		last, ok := f.Furthest()
		if !ok {
			continue
		}
		if last.Status == phases.Clear {
			cleared++
			continue
		}
		if _, seen := counts[last.PhaseName]; !seen {
			order = append(order, last.PhaseName)
		}
		counts[last.PhaseName]++
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Pull Outcomes\n")
	if cleared > 0 {
		sb.WriteString(fmt.Sprintf("    \"Cleared\" : %d\n", cleared))
	}
	for _, name := range order {
		sb.WriteString(fmt.Sprintf("    \"Ended in %s\" : %d\n", escape(name), counts[name]))
	}
	sb.WriteString("```")
	return sb.String()
}

func label(name string) string {
	return fmt.Sprintf("\"%s\"", escape(name))
}

// Mermaid has no escape for quotes inside labels.
func escape(name string) string {
	return strings.ReplaceAll(name, "\"", "'")
}
