package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"fightprog/internal/analysis"
	"fightprog/internal/config"
	"fightprog/internal/fflogs"
	"fightprog/internal/logging"
	"fightprog/internal/phases"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose        bool
	trace          bool
	keyFile        string
	definitionsDir string
	concurrency    int

	cfg *config.AppConfig
)

const preBetaWarning = "fightprog is pre-beta: phase definitions are incomplete and statistics may be wrong."

var rootCmd = &cobra.Command{
	Use:   "fightprog",
	Short: "fightprog reports phase progression statistics for FFLogs reports",
	Long: `fightprog walks the combat log of FFLogs reports to find where each phase of a raid
encounter started and ended, then reports seen and clear rates across every pull.

Run without a subcommand to serve the analysis as MCP tools over stdio.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose, trace); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cmd.Flags().Changed("phase-definitions") {
			cfg.DefinitionsDir = definitionsDir
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Concurrency = concurrency
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("fightprog starting")
		log.Warn().Msg(preBetaWarning)
		return nil
	},
	RunE: runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&trace, "trace", false, "log every event the phase matcher inspects")
	flags.StringVar(&keyFile, "fflogs-keyfile", "", "file holding the FFLogs v1 API key (overrides FFLOGS_API_KEY_FILE and FFLOGS_API_KEY)")
	flags.StringVar(&definitionsDir, "phase-definitions", "", "directory of phase definition TOML files (overrides PHASE_DEFINITIONS_DIR)")
	flags.IntVar(&concurrency, "concurrency", 1, "fights of one report analysed at once (overrides FIGHT_CONCURRENCY)")
}

func loadDefinitions() (*phases.Collection, error) {
	defs, err := phases.LoadDir(cfg.DefinitionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load phase definitions: %w", err)
	}
	return defs, nil
}

// newAnalysisClient wires the FFLogs client and the phase definitions together.
func newAnalysisClient() (*analysis.Client, error) {
	defs, err := loadDefinitions()
	if err != nil {
		return nil, err
	}
	if err := cfg.ResolveAPIKey(keyFile); err != nil {
		return nil, err
	}

	source := fflogs.NewClient(cfg.FFLogs)
	return analysis.NewClient(source, defs, analysis.WithConcurrency(cfg.Concurrency)), nil
}

// commandContext is cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

// withHeartbeat runs fn while logging that it is still busy.
func withHeartbeat(ctx context.Context, what string, fn func() error) error {
	stop := analysis.Heartbeat(ctx, analysis.HeartbeatInterval, func() {
		log.Info().Str("task", what).Msg("analysis still running")
	})
	defer stop()
	return fn()
}
