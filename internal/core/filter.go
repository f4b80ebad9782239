package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jmylchreest/notifbar/internal/model"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual    FilterOp = "="  // Exact match
	FilterOpNotEqual FilterOp = "!=" // Not equal
	FilterOpContains FilterOp = "~"  // Contains substring
	FilterOpRegex    FilterOp = "~=" // Regex match
)

// Notification kinds matched by the "kind" filter field.
const (
	KindTab    = "tab"
	KindGlobal = "global"
	KindBoth   = "both"
	KindNone   = "none"
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // Field name: origin, greeting, message, persist, kind
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	regex   *regexp.Regexp // Compiled regex for ~= operator
	boolVal bool           // Parsed bool value
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition
}

// FilterOptions specifies simple criteria for filtering notifications.
type FilterOptions struct {
	Origin  string // Exact match on frame origin
	Persist *bool  // Filter by persist option (nil=any)
	Limit   int    // Maximum results (0=unlimited)
}

// Filter filters notifications based on the provided options.
// The relative order of the input is kept.
func Filter(notifications []model.Notification, opts FilterOptions) []model.Notification {
	result := make([]model.Notification, 0, len(notifications))

	for _, n := range notifications {
		if opts.Origin != "" && n.Origin() != opts.Origin {
			continue
		}

		if opts.Persist != nil && n.Persist() != *opts.Persist {
			continue
		}

		result = append(result, n)
	}

	// Apply limit
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result
}

// Kind classifies a notification as tab, global, both or none.
func Kind(n *model.Notification) string {
	switch {
	case n.HasFrameOrigin() && n.HasGreeting():
		return KindBoth
	case n.HasFrameOrigin():
		return KindTab
	case n.HasGreeting():
		return KindGlobal
	default:
		return KindNone
	}
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2"
// Multiple conditions are comma-separated and ANDed together.
//
// Supported fields: origin, greeting, message, persist, kind
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex)
//
// Examples:
//   - "origin=https://brave.com" - exact origin match
//   - "message~password" - message contains "password"
//   - "kind=global" - greeting notifications only
//   - "persist=true,origin~example" - persistent notifications from example origins
func ParseFilter(expr string) (*FilterExpr, error) {
	if expr == "" {
		return &FilterExpr{}, nil
	}

	filter := &FilterExpr{
		Conditions: make([]FilterCondition, 0),
	}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

// parseCondition parses a single condition like "origin=https://x.com".
func parseCondition(s string) (FilterCondition, error) {
	// Earliest operator wins; on a tie the longer operator is preferred so
	// that "!=" is not read as "=" and "~=" is not read as "~".
	bestIdx := -1
	var bestOp FilterOp
	for _, op := range []FilterOp{FilterOpNotEqual, FilterOpRegex, FilterOpEqual, FilterOpContains} {
		idx := strings.Index(s, string(op))
		if idx <= 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
			bestOp = op
		}
	}
	if bestIdx == -1 {
		return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
	}

	cond := FilterCondition{
		Field:    strings.ToLower(strings.TrimSpace(s[:bestIdx])),
		Operator: bestOp,
		Value:    strings.TrimSpace(s[bestIdx+len(bestOp):]),
	}
	if err := cond.init(); err != nil {
		return FilterCondition{}, err
	}
	return cond, nil
}

// init pre-parses and validates the condition value.
func (c *FilterCondition) init() error {
	switch c.Field {
	case "origin", "frameorigin", "frame_origin":
		c.Field = "origin"
	case "greeting":
		c.Field = "greeting"
	case "message", "body", "msg":
		c.Field = "message"
	case "persist":
		c.Field = "persist"
		c.boolVal = parseBool(c.Value)
	case "kind", "type":
		c.Field = "kind"
		switch strings.ToLower(c.Value) {
		case KindTab, KindGlobal, KindBoth, KindNone:
			c.Value = strings.ToLower(c.Value)
		default:
			if c.Operator == FilterOpEqual || c.Operator == FilterOpNotEqual {
				return fmt.Errorf("invalid kind: %s (use tab, global, both, or none)", c.Value)
			}
		}
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	if c.Operator == FilterOpRegex {
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}

	return nil
}

// parseBool parses various boolean representations.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "y", "t":
		return true
	default:
		return false
	}
}

// Match tests if a notification matches the filter expression.
// All conditions must match (AND logic).
func (f *FilterExpr) Match(n model.Notification) bool {
	for _, cond := range f.Conditions {
		if !cond.Match(n) {
			return false
		}
	}
	return true
}

// Match tests if a notification matches this single condition.
func (c *FilterCondition) Match(n model.Notification) bool {
	switch c.Field {
	case "origin":
		return c.matchString(n.Origin())
	case "greeting":
		return c.matchString(n.GreetingText())
	case "message":
		return c.matchString(n.Message)
	case "persist":
		return c.matchBool(n.Persist())
	case "kind":
		return c.matchString(Kind(&n))
	default:
		return false
	}
}

// matchString matches a string field.
func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.Value
	case FilterOpNotEqual:
		return fieldValue != c.Value
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

// matchBool matches a boolean field.
func (c *FilterCondition) matchBool(fieldValue bool) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.boolVal
	case FilterOpNotEqual:
		return fieldValue != c.boolVal
	default:
		return false
	}
}

// FilterWithExpr filters notifications using a filter expression.
func FilterWithExpr(notifications []model.Notification, expr *FilterExpr) []model.Notification {
	if expr == nil || len(expr.Conditions) == 0 {
		return notifications
	}

	result := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		if expr.Match(n) {
			result = append(result, n)
		}
	}
	return result
}
