// Package model defines the core data structures for notifbar.
package model

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// Notification represents a single notification bar entry.
// A notification is tab-scoped when it carries a FrameOrigin and global when
// it carries a Greeting. Nothing prevents both being set.
type Notification struct {
	// notifbar metadata (derived on import, never part of selection)
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Scope markers. Presence matters, not the value: a key present with
	// null is still present.
	FrameOrigin *string `json:"frameOrigin,omitempty" yaml:"frameOrigin,omitempty"`
	Greeting    *string `json:"greeting,omitempty" yaml:"greeting,omitempty"`

	// Display fields
	Message  string   `json:"message,omitempty" yaml:"message,omitempty"`
	Position string   `json:"position,omitempty" yaml:"position,omitempty"`
	Buttons  []Button `json:"buttons,omitempty" yaml:"buttons,omitempty"`
	Options  *Options `json:"options,omitempty" yaml:"options,omitempty"`

	// Extra holds every other key of the notification, plus known display
	// keys whose value had an unexpected type. Written back out unchanged.
	Extra map[string]any `json:"-" yaml:"-"`
}

// Button is an action button rendered alongside a notification.
type Button struct {
	Text      string `json:"text" yaml:"text"`
	ClassName string `json:"className,omitempty" yaml:"className,omitempty"`
}

// Options holds optional presentation flags.
type Options struct {
	Persist      bool   `json:"persist,omitempty" yaml:"persist,omitempty"`
	AdvancedText string `json:"advancedText,omitempty" yaml:"advancedText,omitempty"`
	AdvancedLink string `json:"advancedLink,omitempty" yaml:"advancedLink,omitempty"`
}

// DerivedID returns a ULID for a notification at position in its snapshot.
// The entropy is a hash of the position and the notification's content, so
// loading the same snapshot again yields the same IDs.
func DerivedID(position int, n *Notification) (string, error) {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(position)))
	for _, field := range []*string{n.FrameOrigin, n.Greeting, &n.Message} {
		h.Write([]byte{0})
		if field == nil {
			h.Write([]byte{0})
			continue
		}
		h.Write([]byte{1})
		h.Write([]byte(*field))
	}

	id, err := ulid.New(0, bytes.NewReader(h.Sum(nil)))
	if err != nil {
		return "", fmt.Errorf("failed to derive ULID: %w", err)
	}
	return id.String(), nil
}

// EnsureID assigns a derived ID if the notification has none.
func (n *Notification) EnsureID(position int) error {
	if n.ID != "" {
		return nil
	}
	id, err := DerivedID(position, n)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// HasFrameOrigin reports whether the notification is tied to a frame origin.
func (n *Notification) HasFrameOrigin() bool {
	return n.FrameOrigin != nil
}

// HasGreeting reports whether the notification carries a greeting.
func (n *Notification) HasGreeting() bool {
	return n.Greeting != nil
}

// Origin returns the frame origin or an empty string.
func (n *Notification) Origin() string {
	if n.FrameOrigin == nil {
		return ""
	}
	return *n.FrameOrigin
}

// GreetingText returns the greeting or an empty string.
func (n *Notification) GreetingText() string {
	if n.Greeting == nil {
		return ""
	}
	return *n.Greeting
}

// Persist reports whether the notification asked to persist across navigations.
func (n *Notification) Persist() bool {
	return n.Options != nil && n.Options.Persist
}

// MessageTruncated returns the message truncated to maxLen characters.
// If the message is longer, it is truncated and "..." is appended.
func (n *Notification) MessageTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Collapse whitespace and newlines to single spaces
	msg := strings.Join(strings.Fields(n.Message), " ")
	return Truncate(msg, maxLen)
}

// Truncate shortens s to at most maxLen runes, ending in "..." when cut.
// A maxLen of zero or less leaves s alone.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Clone creates a deep copy of the notification.
func (n *Notification) Clone() *Notification {
	clone := *n
	if n.FrameOrigin != nil {
		origin := *n.FrameOrigin
		clone.FrameOrigin = &origin
	}
	if n.Greeting != nil {
		greeting := *n.Greeting
		clone.Greeting = &greeting
	}
	if n.Buttons != nil {
		clone.Buttons = append([]Button(nil), n.Buttons...)
	}
	if n.Options != nil {
		opts := *n.Options
		clone.Options = &opts
	}
	if n.Extra != nil {
		clone.Extra = make(map[string]any, len(n.Extra))
		for k, v := range n.Extra {
			clone.Extra[k] = v
		}
	}
	return &clone
}

// StringPtr returns a pointer to s. Handy for building notifications in code.
func StringPtr(s string) *string {
	return &s
}
