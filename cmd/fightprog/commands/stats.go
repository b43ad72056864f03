package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fightprog/internal/analysis"
	"fightprog/internal/visuals"
)

var (
	statsJSON   bool
	statsPlain  bool
	statsCharts bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <report> <encounter>",
	Short: "Summarise phase progression for every pull of an encounter in a report",
	Example: `  fightprog stats https://www.fflogs.com/reports/aBcDeFgHiJkLmNoP "Dragonsong's Reprise"
  fightprog stats aBcDeFgHiJkLmNoP Dragonsong\'s Reprise --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAnalysisClient()
		if err != nil {
			return err
		}
		encounter := strings.Join(args[1:], " ")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		var a *analysis.EncounterAnalysis
		err = withHeartbeat(ctx, "stats", func() error {
			a, err = client.AnalyseEncounter(ctx, args[0], encounter)
			return err
		})
		if err != nil {
			return err
		}
		summary := a.Summary

		out := cmd.OutOrStdout()
		switch {
		case statsJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		case statsPlain:
			fmt.Fprint(out, summary.String())
		default:
			fmt.Fprintln(out, renderSummary(a.ReportCode, summary))
		}

		if statsCharts || cfg.EnableMermaidCharts {
			for _, chart := range []string{
				visuals.GenerateClearRateChart(summary),
				visuals.GeneratePhaseDurationChart(summary),
				visuals.GenerateWipePie(a.Fights),
			} {
				if chart != "" {
					fmt.Fprintln(out, chart)
				}
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the summary as JSON")
	statsCmd.Flags().BoolVar(&statsPlain, "plain", false, "print the summary as plain text")
	statsCmd.Flags().BoolVar(&statsCharts, "charts", false, "append Mermaid charts (always on with ENABLE_MERMAID_CHARTS)")
	statsCmd.MarkFlagsMutuallyExclusive("json", "plain")
	rootCmd.AddCommand(statsCmd)
}
