package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/notifbar/internal/core"
	"github.com/jmylchreest/notifbar/internal/model"
)

// PlainFormatter formats notifications as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes notifications as plain text.
func (f *PlainFormatter) Format(w io.Writer, notifications []model.Notification) error {
	for i, n := range notifications {
		if err := f.formatNotification(w, i+1, &n); err != nil {
			return err
		}
	}
	return nil
}

// formatNotification formats a single notification.
func (f *PlainFormatter) formatNotification(w io.Writer, index int, n *model.Notification) error {
	// Use custom template if available
	if f.template != nil {
		return f.template.Execute(w, newTemplateData(index, n))
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	if f.opts.ShowKind {
		sb.WriteString(fmt.Sprintf("<%s> ", core.Kind(n)))
	}

	if f.opts.ShowSource {
		if src := source(n); src != "" {
			sb.WriteString(src)
		}
	}

	sb.WriteString("\n")

	if n.Message != "" {
		msg := n.Message
		if !f.opts.IncludeNewline {
			msg = strings.ReplaceAll(msg, "\n", " ")
		}
		if f.opts.MessageMaxLen > 3 && len(msg) > f.opts.MessageMaxLen {
			msg = msg[:f.opts.MessageMaxLen-3] + "..."
		}
		sb.WriteString("    " + msg + "\n")
	}

	for _, b := range n.Buttons {
		sb.WriteString("    [" + b.Text + "]\n")
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

// FormatField outputs a specific field from a notification.
func FormatField(n *model.Notification, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return n.ID
	case "origin", "frameorigin", "frame_origin":
		return n.Origin()
	case "greeting":
		return n.GreetingText()
	case "message", "body":
		return n.Message
	case "kind", "type":
		return core.Kind(n)
	case "link", "advanced_link":
		if n.Options != nil {
			return n.Options.AdvancedLink
		}
		return ""
	case "all", "full":
		return fmt.Sprintf("%s\n%s", source(n), n.Message)
	default:
		return n.Message
	}
}
