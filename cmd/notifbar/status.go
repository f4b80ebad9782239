package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notifbar/internal/adapter/output"
	"github.com/jmylchreest/notifbar/internal/core"
)

var statusOpts struct {
	plain bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output notification status in Waybar's custom module JSON format.

The output includes:
  - text: Number of bar entries visible in the active tab
  - alt: Status class (empty, tab, global, both)
  - tooltip: Breakdown of tab and global notifications
  - class: Same as alt, for CSS styling

A snapshot that cannot be read or has the wrong shape produces an
"error" status rather than a failing command, so the bar keeps running.

Example Waybar module:

  "custom/notifbar": {
    "exec": "notifbar status -i ~/.cache/browser/state.json",
    "interval": 5,
    "return-type": "json"
  }

For push updates use "notifbar watch" instead.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.plain, "plain", false,
		"Print a one-line description instead of JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := loadSnapshot(ctx, cmd)
	if err != nil {
		logger.Warn("failed to load snapshot", "error", err)
		return outputStatus(cmd.OutOrStdout(), errorStatus(err))
	}

	summary, err := core.Summarize(s)
	if err != nil {
		logger.Warn("failed to summarize snapshot", "error", err)
		return outputStatus(cmd.OutOrStdout(), errorStatus(err))
	}

	if statusOpts.plain {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), output.Describe(summary))
		return err
	}

	return outputStatus(cmd.OutOrStdout(), output.NewWaybarStatus(summary))
}

// errorStatus is the status shown when no summary could be computed.
func errorStatus(err error) output.WaybarStatus {
	status := output.WaybarStatus{
		Text:  "",
		Alt:   "error",
		Class: "error",
	}
	if err != nil {
		status.Tooltip = err.Error()
	}
	return status
}

// outputStatus writes the status as JSON.
func outputStatus(w io.Writer, status output.WaybarStatus) error {
	encoder := json.NewEncoder(w)
	return encoder.Encode(status)
}
