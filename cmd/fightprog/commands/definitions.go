package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fightprog/internal/phases"
)

var definitionsCmd = &cobra.Command{
	Use:   "definitions",
	Short: "Inspect the loaded phase definitions",
}

var definitionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every encounter with its phases and markers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := loadDefinitions()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range defs.Names() {
			enc, _ := defs.Get(name)
			fmt.Fprintln(out, titleStyle.Render(name))
			for i, p := range enc.Phases {
				fmt.Fprintf(out, "  %d. %s  %s\n", i+1, p.Name, dimStyle.Render(describeMarkers(p)))
			}
		}
		return nil
	},
}

var definitionsValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Load and validate phase definition files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.DefinitionsDir
		if len(args) == 1 {
			dir = args[0]
		}
		defs, err := phases.LoadDir(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d encounters in %s are valid\n", okStyle.Render("OK"), defs.Len(), dir)
		return nil
	},
}

func describeMarkers(p phases.Definition) string {
	var parts []string
	if p.StartMarker != nil {
		parts = append(parts, "start: "+p.StartMarker.String())
	}
	if p.EndMarker != nil {
		parts = append(parts, "end: "+p.EndMarker.String())
	}
	return strings.Join(parts, ", ")
}

func init() {
	definitionsCmd.AddCommand(definitionsListCmd, definitionsValidateCmd)
	rootCmd.AddCommand(definitionsCmd)
}
