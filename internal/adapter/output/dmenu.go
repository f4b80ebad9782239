package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/notifbar/internal/core"
	"github.com/jmylchreest/notifbar/internal/model"
)

// DmenuFormatter formats notifications for dmenu/rofi/fuzzel.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes notifications in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, notifications []model.Notification) error {
	for i, n := range notifications {
		line := f.formatLine(i+1, &n)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single notification line.
func (f *DmenuFormatter) formatLine(index int, n *model.Notification) string {
	// Use custom template if available
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, newTemplateData(index, n)); err == nil {
			return buf.String()
		}
	}

	// Default format: index | kind | origin-or-greeting | message
	var parts []string
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}

	if f.opts.ShowKind {
		parts = append(parts, core.Kind(n))
	}

	if f.opts.ShowSource {
		if src := source(n); src != "" {
			parts = append(parts, src)
		}
	}

	parts = append(parts, sanitizeMessage(n.Message, f.opts.MessageMaxLen, f.opts.IncludeNewline))

	return strings.Join(parts, sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Index        int
	Notification *model.Notification
	Kind         string
	Source       string
}

func newTemplateData(index int, n *model.Notification) templateData {
	return templateData{
		Index:        index,
		Notification: n,
		Kind:         core.Kind(n),
		Source:       source(n),
	}
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": model.Truncate,
		"kindIcon": func(kind string) string {
			switch kind {
			case core.KindTab:
				return "T"
			case core.KindGlobal:
				return "G"
			case core.KindBoth:
				return "*"
			default:
				return "-"
			}
		},
	}
}

// source returns the origin for tab notifications and the greeting otherwise.
func source(n *model.Notification) string {
	if n.HasFrameOrigin() {
		return n.Origin()
	}
	return n.GreetingText()
}

// sanitizeMessage cleans up message text for single-line display.
func sanitizeMessage(msg string, maxLen int, includeNewline bool) string {
	// Replace newlines with spaces unless explicitly included
	if !includeNewline {
		msg = strings.ReplaceAll(msg, "\n", " ")
		msg = strings.ReplaceAll(msg, "\r", "")
	}

	// Collapse multiple spaces
	for strings.Contains(msg, "  ") {
		msg = strings.ReplaceAll(msg, "  ", " ")
	}

	msg = strings.TrimSpace(msg)

	return model.Truncate(msg, maxLen)
}
