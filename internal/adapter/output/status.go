package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/jmylchreest/notifbar/internal/core"
)

// Status classes, also used as the Waybar "alt" value.
const (
	StatusEmpty  = "empty"
	StatusTab    = "tab"
	StatusGlobal = "global"
	StatusBoth   = "both"
)

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

// StatusClass classifies a summary as empty, tab, global or both.
func StatusClass(s core.Summary) string {
	switch {
	case s.PerTab && s.IsGlobal:
		return StatusBoth
	case s.PerTab:
		return StatusTab
	case s.IsGlobal:
		return StatusGlobal
	default:
		return StatusEmpty
	}
}

// Describe renders a one-line, human-readable description of a summary.
func Describe(s core.Summary) string {
	if !s.PerTab && !s.IsGlobal {
		return "No notifications"
	}

	var parts []string
	if s.PerTab {
		tab := english.Plural(s.ActiveTab, "tab notification", "")
		if s.ActiveOrigin != "" {
			tab += " for " + s.ActiveOrigin
		}
		parts = append(parts, tab)
	}
	if s.IsGlobal {
		parts = append(parts, english.Plural(s.Global, "global notification", ""))
	}
	return strings.Join(parts, ", ")
}

// NewWaybarStatus builds the Waybar payload for a summary.
// The text is the number of bar entries visible in the active tab. A
// notification in both views counts twice since it is shown twice.
func NewWaybarStatus(s core.Summary) WaybarStatus {
	class := StatusClass(s)
	if class == StatusEmpty {
		return WaybarStatus{Text: "", Alt: StatusEmpty, Class: StatusEmpty, Tooltip: Describe(s)}
	}

	return WaybarStatus{
		Text:    fmt.Sprintf("%d", s.ActiveTab+s.Global),
		Alt:     class,
		Tooltip: fmt.Sprintf("%s\n%s", english.Plural(s.Total, "notification", ""), Describe(s)),
		Class:   class,
	}
}
