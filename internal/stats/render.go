package stats

import (
	"fmt"
	"strings"
)

func (p PhaseStatistics) String() string {
	if !p.Seen() {
		return fmt.Sprintf("**%s**: This phase was never seen.", p.Name)
	}
	return fmt.Sprintf(
		"**%s**:\nA total of %.1fs was spent practicing this phase, with a clear rate of %.1f%%.\nThis phase was seen %d times (%.1f%% of pulls)",
		p.Name, p.TotalTimeSecs, p.ClearRate*100, p.SeenCount, p.SeenRate*100,
	)
}

func (s ReportSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"Total pulls: %d with average duration %.1fs.\nA total of %.1fs was spent in battle with individual phase progress as follows: \n",
		s.PullCount, s.AverageDurationSecs, s.TotalTimeSecs,
	)
	for _, phase := range s.Phases {
		b.WriteString(phase.String())
		b.WriteString("\n")
	}
	return b.String()
}
