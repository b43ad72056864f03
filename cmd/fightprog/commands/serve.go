package commands

import (
	"github.com/spf13/cobra"

	"fightprog/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve fight_stats, fight_phases and list_encounters as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	client, err := newAnalysisClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	server := mcp.NewServer(client, Version, mcp.WithMermaidCharts(cfg.EnableMermaidCharts))
	return server.Serve(ctx)
}
