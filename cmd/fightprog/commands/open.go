package commands

import (
	"fmt"
	"strconv"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"fightprog/internal/analysis"
)

var openCmd = &cobra.Command{
	Use:   "open <report> [fight-id]",
	Short: "Open a report, or one fight of it, on fflogs.com",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := analysis.ParseReportCode(args[0])
		if err != nil {
			return err
		}
		url := analysis.ReportURL(code)
		if len(args) == 2 {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fight id %q: %w", args[1], err)
			}
			url = fmt.Sprintf("%s#fight=%d", url, id)
		}

		log.Info().Str("url", url).Msg("Opening report in browser")
		return browser.OpenURL(url)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
