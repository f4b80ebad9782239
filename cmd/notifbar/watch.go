package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notifbar/internal/adapter/input"
	"github.com/jmylchreest/notifbar/internal/adapter/output"
	"github.com/jmylchreest/notifbar/internal/store"
)

var watchOpts struct {
	debounce string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream Waybar status as the snapshot file changes",
	Long: `Watch the state snapshot file and print a Waybar status line each time
the bar's contents change.

Rewrites that leave the selection unchanged (for example navigating
within the same origin) do not print a new line.

Requires a snapshot file; stdin cannot be watched.

Example Waybar module:

  "custom/notifbar": {
    "exec": "notifbar watch -i ~/.cache/browser/state.json",
    "return-type": "json"
  }`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchOpts.debounce, "debounce", "",
		"Delay before reloading after a change (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := snapshotSource()
	if path == "" || path == input.SourceStdin {
		return errors.New("watch requires a snapshot file; use --state-file")
	}

	format, err := snapshotFormat()
	if err != nil {
		return err
	}

	debounce := getConfig().DebounceDuration()
	if watchOpts.debounce != "" {
		c := *getConfig()
		c.Watch.Debounce = watchOpts.debounce
		debounce = c.DebounceDuration()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.NewStore(input.NewFileAdapter(path, format))
	defer func() { _ = st.Close() }()

	events := st.Subscribe()

	// The first load always notifies, so the bar gets an initial line.
	if err := st.Reload(ctx); err != nil {
		logger.Warn("initial load failed", "path", path, "error", err)
	}

	fw, err := store.NewFileWatcher(st, path, debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Stop() }()
	if err := fw.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	logger.Debug("watching snapshot", "path", path, "debounce", debounce)

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := outputStatus(out, eventStatus(ev)); err != nil {
				return err
			}
		}
	}
}

// eventStatus maps a store change to the status line to print.
func eventStatus(ev store.ChangeEvent) output.WaybarStatus {
	if ev.Type == store.ChangeTypeError {
		return errorStatus(ev.Err)
	}
	return output.NewWaybarStatus(ev.Summary)
}
