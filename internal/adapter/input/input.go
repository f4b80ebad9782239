// Package input provides input adapters that load state snapshots.
package input

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmylchreest/notifbar/internal/state"
)

// SourceStdin is the source name that reads the snapshot from standard input.
const SourceStdin = "-"

// SnapshotAdapter loads a state snapshot from a source.
type SnapshotAdapter interface {
	// Name returns the adapter identifier (e.g., "file", "stdin").
	Name() string

	// Load reads and validates a snapshot from the source.
	Load(ctx context.Context) (*state.State, error)
}

// NewAdapter creates a SnapshotAdapter for the given source.
// An empty source or "-" reads stdin; anything else is a file path.
func NewAdapter(source string, format Format) SnapshotAdapter {
	if source == "" || source == SourceStdin {
		return NewStdinAdapter(format)
	}
	return NewFileAdapter(source, format)
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Source + ": " + e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// Format identifies the encoding of a snapshot document.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat parses a format name.
// Accepts: auto, json, yaml, yml, toml
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("invalid input format: %s (use auto, json, yaml, or toml)", s)
	}
}

// FormatFromPath guesses the format from a file extension.
// Returns FormatAuto when the extension is not recognised.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	default:
		return FormatAuto
	}
}
