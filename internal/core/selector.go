// Package core provides the notification selectors plus filtering and lookup logic.
package core

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/notifbar/internal/model"
	"github.com/jmylchreest/notifbar/internal/state"
	"github.com/jmylchreest/notifbar/internal/urlutil"
)

// Scope selects which view of the notifications to return.
type Scope string

const (
	ScopeActive Scope = "active" // Notifications for the active tab's origin
	ScopeGlobal Scope = "global" // Notifications carrying a greeting
	ScopeAll    Scope = "all"    // Every notification, unfiltered
)

// ParseScope parses a scope string.
// Accepts: active, tab, global, all
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "tab", "pertab", "per-tab":
		return ScopeActive, nil
	case "global", "greeting":
		return ScopeGlobal, nil
	case "all", "":
		return ScopeAll, nil
	default:
		return "", fmt.Errorf("invalid scope: %s (use active, global, or all)", s)
	}
}

// GetNotifications returns every notification in s, or an empty slice.
func GetNotifications(s *state.State) ([]model.Notification, error) {
	s, err := state.Validate(s)
	if err != nil {
		return nil, err
	}
	if s.Notifications == nil {
		return []model.Notification{}, nil
	}
	return s.Notifications, nil
}

// IsSameOrigin reports whether n was raised by the origin of the active frame.
// Notifications without a frame origin never match, and neither does an
// active frame whose location has no origin.
func IsSameOrigin(s *state.State, n *model.Notification) (bool, error) {
	s, err := state.Validate(s)
	if err != nil {
		return false, err
	}
	if n == nil || !n.HasFrameOrigin() {
		return false, nil
	}
	origin, ok := urlutil.GetOrigin(s.ActiveFrame().Location)
	if !ok {
		return false, nil
	}
	return origin == *n.FrameOrigin, nil
}

// GetActiveTabNotifications returns the notifications belonging to the
// active tab's origin, in their original order.
func GetActiveTabNotifications(s *state.State) ([]model.Notification, error) {
	notifications, err := GetNotifications(s)
	if err != nil {
		return nil, err
	}

	// Resolve the active origin once rather than per notification.
	origin, ok := urlutil.GetOrigin(s.ActiveFrame().Location)

	result := make([]model.Notification, 0, len(notifications))
	if !ok {
		return result, nil
	}
	for _, n := range notifications {
		if n.HasFrameOrigin() && *n.FrameOrigin == origin {
			result = append(result, n)
		}
	}
	return result, nil
}

// IsPerTab reports whether the active tab has any notifications.
func IsPerTab(s *state.State) (bool, error) {
	notifications, err := GetActiveTabNotifications(s)
	if err != nil {
		return false, err
	}
	return len(notifications) > 0, nil
}

// GetGlobalNotifications returns the notifications carrying a greeting,
// regardless of origin, in their original order.
func GetGlobalNotifications(s *state.State) ([]model.Notification, error) {
	notifications, err := GetNotifications(s)
	if err != nil {
		return nil, err
	}

	result := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.HasGreeting() {
			result = append(result, n)
		}
	}
	return result, nil
}

// IsGlobal reports whether any global notification exists.
func IsGlobal(s *state.State) (bool, error) {
	notifications, err := GetGlobalNotifications(s)
	if err != nil {
		return false, err
	}
	return len(notifications) > 0, nil
}

// Select returns the notifications for the given scope.
func Select(s *state.State, scope Scope) ([]model.Notification, error) {
	switch scope {
	case ScopeActive:
		return GetActiveTabNotifications(s)
	case ScopeGlobal:
		return GetGlobalNotifications(s)
	case ScopeAll, "":
		return GetNotifications(s)
	default:
		return nil, fmt.Errorf("invalid scope: %s", scope)
	}
}

// Summary is a point-in-time digest of a snapshot's notifications.
type Summary struct {
	ActiveOrigin string `json:"active_origin,omitempty"`
	Total        int    `json:"total"`
	ActiveTab    int    `json:"active_tab"`
	Global       int    `json:"global"`
	PerTab       bool   `json:"per_tab"`
	IsGlobal     bool   `json:"is_global"`
}

// Summarize computes a Summary for s.
func Summarize(s *state.State) (Summary, error) {
	all, err := GetNotifications(s)
	if err != nil {
		return Summary{}, err
	}
	active, err := GetActiveTabNotifications(s)
	if err != nil {
		return Summary{}, err
	}
	global, err := GetGlobalNotifications(s)
	if err != nil {
		return Summary{}, err
	}

	origin, _ := urlutil.GetOrigin(s.ActiveFrame().Location)

	return Summary{
		ActiveOrigin: origin,
		Total:        len(all),
		ActiveTab:    len(active),
		Global:       len(global),
		PerTab:       len(active) > 0,
		IsGlobal:     len(global) > 0,
	}, nil
}
