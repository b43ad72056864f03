package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fightprog/internal/stats"
)

var fightJSON bool

var fightCmd = &cobra.Command{
	Use:   "fight <report> <fight-id>",
	Short: "Show the phases of a single fight",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fightID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid fight id %q: %w", args[1], err)
		}
		client, err := newAnalysisClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		var fight *stats.FightStatistics
		err = withHeartbeat(ctx, "fight", func() error {
			fight, err = client.AnalyseFightByID(ctx, args[0], fightID)
			return err
		})
		if err != nil {
			return err
		}

		if fightJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fight)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderFight(*fight))
		return nil
	},
}

func init() {
	fightCmd.Flags().BoolVar(&fightJSON, "json", false, "print the fight as JSON")
	rootCmd.AddCommand(fightCmd)
}
