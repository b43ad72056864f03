package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fightprog/internal/analysis"
	"fightprog/internal/phases"
	"fightprog/internal/stats"
)

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorGray   = lipgloss.Color("#6272A4")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorGray)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	critStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

const phaseColumn = 24

func clearRateStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 0.5:
		return okStyle
	case rate >= 0.2:
		return warnStyle
	default:
		return critStyle
	}
}

func statusStyle(s phases.ClearedStatus) lipgloss.Style {
	switch s {
	case phases.Clear:
		return okStyle
	case phases.Wiped:
		return critStyle
	default:
		return dimStyle
	}
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// renderSummary draws a report summary as a table with one row per phase.
func renderSummary(code string, s stats.ReportSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Encounter))
	b.WriteString(dimStyle.Render("  " + analysis.ReportURL(code)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d pulls, %.1fs on average, %.1fs in total\n\n", s.PullCount, s.AverageDurationSecs, s.TotalTimeSecs)

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %6s %10s %10s %9s %9s",
		pad("Phase", phaseColumn), "Seen", "Clear", "Time", "Median", "P90")))
	for _, p := range s.Phases {
		b.WriteString("\n")
		b.WriteString(pad(p.Name, phaseColumn))
		if !p.Seen() {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" %6d %10s", 0, "never seen")))
			continue
		}
		fmt.Fprintf(&b, " %6d ", p.SeenCount)
		b.WriteString(clearRateStyle(p.ClearRate).Render(fmt.Sprintf("%9.1f%%", p.ClearRate*100)))
		fmt.Fprintf(&b, " %9.1fs %8.1fs %8.1fs", p.TotalTimeSecs, p.MedianSecs, p.P90Secs)
	}
	return panelStyle.Render(b.String())
}

// renderFight draws one fight's phases with their durations and outcomes.
func renderFight(f stats.FightStatistics) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s #%d", f.FightName, f.FightID)))
	if f.Start != nil {
		b.WriteString(dimStyle.Render("  " + f.Start.Format("2006-01-02 15:04:05 MST")))
	}
	fmt.Fprintf(&b, "\n%.1fs\n\n", f.DurationSecs)

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %10s  %s", pad("Phase", phaseColumn), "Duration", "Status")))
	for _, p := range f.Progress {
		fmt.Fprintf(&b, "\n%s %9.1fs  ", pad(p.PhaseName, phaseColumn), p.DurationSecs)
		b.WriteString(statusStyle(p.Status).Render(p.Status.String()))
	}
	if len(f.Progress) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("no phase was reached"))
	}
	return panelStyle.Render(b.String())
}
