package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notifbar/internal/adapter/output"
	"github.com/jmylchreest/notifbar/internal/core"
	"github.com/jmylchreest/notifbar/internal/state"
)

var validateOpts struct {
	quiet bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a state snapshot can be read",
	Long: `Load the state snapshot and check its shape.

Exits non-zero when the snapshot cannot be decoded or is not a map.
On success, prints a one-line description of what the bar would show.

Examples:
  notifbar validate -i state.json
  browser-dump | notifbar validate --input-format yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVarP(&validateOpts.quiet, "quiet", "q", false,
		"Only report errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := loadSnapshot(ctx, cmd)
	if err != nil {
		if errors.Is(err, state.ErrInvalidStateShape) || errors.Is(err, state.ErrMalformedState) {
			return fmt.Errorf("invalid snapshot: %w", err)
		}
		return err
	}

	summary, err := core.Summarize(s)
	if err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	logger.Debug("snapshot origins", "origins", core.UniqueOrigins(s.Notifications))

	if validateOpts.quiet {
		return nil
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", output.Describe(summary))
	return err
}
