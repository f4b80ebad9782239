package core

import (
	"strings"

	"github.com/jmylchreest/notifbar/internal/model"
)

// LookupByID finds a notification by its ID.
// Returns nil if not found.
func LookupByID(notifications []model.Notification, id string) *model.Notification {
	for i := range notifications {
		if notifications[i].ID == id {
			return &notifications[i]
		}
	}
	return nil
}

// LookupByIndex finds a notification by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(notifications []model.Notification, index int) *model.Notification {
	// Convert to 0-based
	idx := index - 1
	if idx < 0 || idx >= len(notifications) {
		return nil
	}
	return &notifications[idx]
}

// Search finds notifications matching a search term in message or greeting.
// Case-insensitive substring match; order is preserved.
func Search(notifications []model.Notification, term string) []model.Notification {
	if term == "" {
		return notifications
	}

	term = strings.ToLower(term)
	result := make([]model.Notification, 0, len(notifications))

	for _, n := range notifications {
		if strings.Contains(strings.ToLower(n.Message), term) ||
			strings.Contains(strings.ToLower(n.GreetingText()), term) {
			result = append(result, n)
		}
	}

	return result
}

// UniqueOrigins returns the distinct frame origins in first-seen order.
func UniqueOrigins(notifications []model.Notification) []string {
	seen := make(map[string]bool)
	var origins []string

	for _, n := range notifications {
		if !n.HasFrameOrigin() {
			continue
		}
		origin := *n.FrameOrigin
		if !seen[origin] {
			seen[origin] = true
			origins = append(origins, origin)
		}
	}
	return origins
}
