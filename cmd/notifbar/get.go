package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notifbar/internal/adapter/output"
	"github.com/jmylchreest/notifbar/internal/core"
	"github.com/jmylchreest/notifbar/internal/model"
)

var getOpts struct {
	// Selection options
	scope string

	// Filter options
	origin  string
	persist string
	filter  string
	search  string
	limit   int

	// Output options
	format   string
	field    string
	template string

	// Lookup options
	index int
	id    string
}

var getCmd = &cobra.Command{
	Use:   "get [index|id]",
	Short: "Select and output notifications",
	Long: `Select notifications from the state snapshot and output them.

The --scope flag picks the view:
  active  notifications raised by the active tab's origin (default)
  global  notifications carrying a greeting, shown on every tab
  all     every notification in the snapshot

The relative order of the snapshot is always kept.

With an index (1-based) or ID argument, outputs that specific notification.

Examples:
  # Notifications for the active tab, one per line
  notifbar get -i state.json

  # Global notifications as JSON
  notifbar get -i state.json --scope global --format json

  # Filter with an expression
  notifbar get -i state.json --scope all --filter "kind=tab,message~password"

  # Pick a notification with fuzzel and print its message
  notifbar get -i state.json --field message "$(notifbar get -i state.json | fuzzel -d)"`,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	// Selection flags
	getCmd.Flags().StringVar(&getOpts.scope, "scope", "",
		"Which notifications to select (active, global, all; default from config)")

	// Filter flags
	getCmd.Flags().StringVar(&getOpts.origin, "origin", "",
		"Only notifications with this frame origin (exact match)")
	getCmd.Flags().StringVar(&getOpts.persist, "persist", "",
		"Only notifications whose persist option matches (true, false)")
	getCmd.Flags().StringVar(&getOpts.filter, "filter", "",
		"Filter expression (e.g. \"kind=global,message~update\")")
	getCmd.Flags().StringVarP(&getOpts.search, "search", "s", "",
		"Search in message and greeting")
	getCmd.Flags().IntVarP(&getOpts.limit, "limit", "n", 0,
		"Maximum number of notifications to show (0=unlimited)")

	// Output flags
	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "",
		"Output format (dmenu, json, yaml, plain, ids; default from config)")
	getCmd.Flags().StringVar(&getOpts.field, "field", "",
		"Output single field from notification (id, origin, greeting, message, kind, link, all)")
	getCmd.Flags().StringVar(&getOpts.template, "template", "",
		"Custom Go template, or the name of a template from config")

	// Lookup flags
	getCmd.Flags().IntVar(&getOpts.index, "index", 0,
		"Lookup notification by 1-based index")
	getCmd.Flags().StringVar(&getOpts.id, "id", "",
		"Lookup notification by ID")
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Check for positional argument (index or ID)
	if len(args) > 0 {
		if idx, err := strconv.Atoi(strings.TrimSpace(args[0])); err == nil && idx > 0 {
			getOpts.index = idx
		} else {
			getOpts.id = args[0]
		}
	}

	notifications, err := selectNotifications(ctx, cmd)
	if err != nil {
		return err
	}

	if getOpts.index > 0 || getOpts.id != "" {
		return handleLookup(cmd, notifications)
	}

	if len(notifications) == 0 {
		logger.Debug("no notifications to output")
		// Structured formats still emit an empty document.
		switch outputFormat() {
		case output.FormatJSON, output.FormatYAML:
		default:
			return nil
		}
	}

	return createFormatter().Format(cmd.OutOrStdout(), notifications)
}

// selectNotifications loads the snapshot and applies scope and filters.
func selectNotifications(ctx context.Context, cmd *cobra.Command) ([]model.Notification, error) {
	scopeName := getOpts.scope
	if scopeName == "" {
		scopeName = getConfig().Output.Scope
	}
	scope, err := core.ParseScope(scopeName)
	if err != nil {
		return nil, err
	}

	expr, err := core.ParseFilter(getOpts.filter)
	if err != nil {
		return nil, err
	}

	s, err := loadSnapshot(ctx, cmd)
	if err != nil {
		return nil, err
	}

	notifications, err := core.Select(s, scope)
	if err != nil {
		return nil, err
	}
	logger.Debug("selected notifications", "scope", scope, "count", len(notifications))

	return applyFilters(notifications, expr), nil
}

// applyFilters applies filter options to notifications.
func applyFilters(notifications []model.Notification, expr *core.FilterExpr) []model.Notification {
	opts := core.FilterOptions{
		Origin: getOpts.origin,
	}

	if getOpts.persist != "" {
		p, err := strconv.ParseBool(getOpts.persist)
		if err != nil {
			logger.Warn("invalid persist value", "value", getOpts.persist, "error", err)
		} else {
			opts.Persist = &p
		}
	}

	notifications = core.Filter(notifications, opts)
	notifications = core.FilterWithExpr(notifications, expr)

	if getOpts.search != "" {
		notifications = core.Search(notifications, getOpts.search)
	}

	// Limit last so it applies to the final list.
	if getOpts.limit > 0 && len(notifications) > getOpts.limit {
		notifications = notifications[:getOpts.limit]
	}

	return notifications
}

// handleLookup handles single notification lookup and output.
func handleLookup(cmd *cobra.Command, notifications []model.Notification) error {
	var n *model.Notification

	if getOpts.index > 0 {
		n = core.LookupByIndex(notifications, getOpts.index)
		if n == nil {
			return fmt.Errorf("notification at index %d not found", getOpts.index)
		}
	} else {
		sel := parseDmenuSelection(getOpts.id)
		if idx, err := strconv.Atoi(sel); err == nil && idx > 0 {
			n = core.LookupByIndex(notifications, idx)
		} else {
			n = core.LookupByID(notifications, sel)
		}
		if n == nil {
			return fmt.Errorf("notification %s not found", getOpts.id)
		}
	}

	if getOpts.field != "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), output.FormatField(n, getOpts.field))
		return err
	}

	// A single notification defaults to JSON rather than a dmenu line.
	format := outputFormat()
	if getOpts.format == "" || format == output.FormatDmenu {
		format = output.FormatJSON
	}
	if format == output.FormatJSON {
		return output.NewJSONFormatter(formatterOptions()).FormatSingle(cmd.OutOrStdout(), n)
	}
	return output.NewFormatter(format, formatterOptions()).Format(cmd.OutOrStdout(), []model.Notification{*n})
}

// parseDmenuSelection extracts the lookup key from a dmenu selection.
// Input could be the full line: "2 | global | House Brave | The BAT is coming"
// or just an ID/index.
func parseDmenuSelection(selection string) string {
	selection = strings.TrimSpace(selection)

	if !strings.Contains(selection, "|") {
		return selection
	}

	idxStr := strings.TrimSpace(strings.SplitN(selection, "|", 2)[0])
	if idx, err := strconv.Atoi(idxStr); err == nil && idx > 0 {
		return idxStr
	}

	return selection
}

// outputFormat resolves the output format from flags and config.
func outputFormat() output.FormatType {
	name := getOpts.format
	if name == "" {
		name = getConfig().Output.Format
	}
	return output.ParseFormatType(name)
}

// formatterOptions builds formatter options from flags and config.
func formatterOptions() output.FormatterOptions {
	c := getConfig()
	opts := output.DefaultFormatterOptions()
	opts.MessageMaxLen = c.Output.MessageMaxLen

	switch {
	case getOpts.template != "":
		// A configured template name wins over a literal template.
		if tmpl := c.GetTemplate(getOpts.template); tmpl != "" {
			opts.Template = tmpl
		} else {
			opts.Template = getOpts.template
		}
	default:
		opts.Template = c.GetTemplate(string(outputFormat()))
	}

	return opts
}

// createFormatter creates the output formatter based on options.
func createFormatter() output.Formatter {
	return output.NewFormatter(outputFormat(), formatterOptions())
}
