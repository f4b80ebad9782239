package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/notifbar/internal/state"
)

// ErrEmptyInput is returned when a source holds no document at all.
var ErrEmptyInput = errors.New("empty input")

// Decode parses data in the given format and coerces it into a *State.
// Notifications without an ID get one derived from their position and
// content, so the same snapshot always yields the same IDs.
func Decode(data []byte, format Format) (*state.State, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}

	s, err := state.From(doc)
	if err != nil {
		return nil, err
	}

	for i := range s.Notifications {
		if err := s.Notifications[i].EnsureID(i); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// decodeDocument parses data into a generic document without judging its shape.
func decodeDocument(data []byte, format Format) (any, error) {
	switch format {
	case FormatJSON:
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return doc, nil
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return doc, nil
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		return doc, nil
	case FormatAuto, "":
		return decodeDocument(data, sniff(data))
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// sniff guesses the format of data.
// Valid JSON wins; TOML is tried before YAML because a TOML document is
// rarely a valid YAML mapping and vice versa.
func sniff(data []byte) Format {
	if data[0] == '{' || json.Valid(data) {
		return FormatJSON
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err == nil {
		return FormatTOML
	}
	return FormatYAML
}
