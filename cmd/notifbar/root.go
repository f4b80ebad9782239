package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notifbar/internal/adapter/input"
	"github.com/jmylchreest/notifbar/internal/config"
	"github.com/jmylchreest/notifbar/internal/state"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose     bool
		stateFile   string
		inputFormat string
		configPath  string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notifbar",
	Short: "Select notification bar entries from a browser state snapshot",
	Long: `notifbar reads a browser application state snapshot and selects the
notification bar entries that apply to it.

Tab notifications carry a frameOrigin and are shown only while the active
frame is on that origin. Global notifications carry a greeting and are shown
everywhere.

The snapshot is read from --state-file, or from stdin when no file is given.
JSON, YAML and TOML snapshots are accepted.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(cmd.ErrOrStderr())

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.stateFile, "state-file", "i", "",
		"Path to the state snapshot (default: config input.state_file, or stdin)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.inputFormat, "input-format", "",
		"Snapshot format (auto, json, yaml, toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/notifbar/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger(w io.Writer) {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(w, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// snapshotSource returns the configured snapshot path; "" means stdin.
func snapshotSource() string {
	if globalOpts.stateFile != "" {
		return globalOpts.stateFile
	}
	return getConfig().Input.StateFile
}

// snapshotFormat returns the configured snapshot format.
func snapshotFormat() (input.Format, error) {
	name := globalOpts.inputFormat
	if name == "" {
		name = getConfig().Input.Format
	}
	return input.ParseFormat(name)
}

// newSnapshotAdapter builds the adapter for the configured source.
// stdin is taken from the command so it can be redirected.
func newSnapshotAdapter(cmd *cobra.Command) (input.SnapshotAdapter, error) {
	format, err := snapshotFormat()
	if err != nil {
		return nil, err
	}

	source := snapshotSource()
	if source == "" || source == input.SourceStdin {
		return input.NewStdinAdapterWithReader(cmd.InOrStdin(), format), nil
	}
	return input.NewAdapter(source, format), nil
}

// loadSnapshot loads and validates the configured snapshot.
func loadSnapshot(ctx context.Context, cmd *cobra.Command) (*state.State, error) {
	adapter, err := newSnapshotAdapter(cmd)
	if err != nil {
		return nil, err
	}

	logger.Debug("loading snapshot", "adapter", adapter.Name(), "source", snapshotSource())

	s, err := adapter.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	logger.Debug("loaded snapshot", "notifications", len(s.Notifications))
	return s, nil
}
