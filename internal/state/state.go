// Package state defines the application state snapshot that notification
// selectors read from, and the checks that guard its shape.
package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmylchreest/notifbar/internal/model"
)

// ErrInvalidStateShape is returned when a snapshot is not a keyed mapping.
// It signals a caller bug and is never retried.
var ErrInvalidStateShape = errors.New("state must be a map")

// ErrMalformedState is returned when a snapshot is a map but one of the
// structural keys (notifications, currentWindow) has the wrong type.
// Mistyped display fields inside a notification are not an error.
var ErrMalformedState = errors.New("malformed state")

// State is the root of the application state snapshot.
// A State is treated as immutable once built; selectors never modify it.
type State struct {
	Notifications []model.Notification `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	CurrentWindow *WindowState         `json:"currentWindow,omitempty" yaml:"currentWindow,omitempty"`
}

// From coerces raw into the canonical *State.
//
// Accepted inputs are *State, State, decoded documents (map[string]any or
// map[any]any with string keys) and JSON objects as []byte or
// json.RawMessage. Anything else, including nil and JSON arrays, yields an
// error wrapping ErrInvalidStateShape. A map whose notifications or
// currentWindow cannot be decoded yields ErrMalformedState.
func From(raw any) (*State, error) {
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("%w: got nil", ErrInvalidStateShape)
	case *State:
		return Validate(v)
	case State:
		return &v, nil
	case map[string]any:
		return fromMap(v)
	case map[any]any:
		m, err := stringKeys(v)
		if err != nil {
			return nil, err
		}
		return fromMap(m)
	case json.RawMessage:
		return fromJSON(v)
	case []byte:
		return fromJSON(v)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidStateShape, raw)
	}
}

// Validate checks that s is usable as a snapshot and returns it.
func Validate(s *State) (*State, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: got nil *State", ErrInvalidStateShape)
	}
	return s, nil
}

// MustFrom is like From but panics on error. Intended for tests and fixtures.
func MustFrom(raw any) *State {
	s, err := From(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func fromJSON(data []byte) (*State, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStateShape, err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: got JSON %s", ErrInvalidStateShape, jsonKind(doc))
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return &s, nil
}

func fromMap(m map[string]any) (*State, error) {
	// Round-trip through JSON so decoded YAML/TOML documents share one
	// decoding path with the struct tags above.
	data, err := json.Marshal(normalize(m))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStateShape, err)
	}
	return fromJSON(data)
}

// normalize converts nested map[any]any values (produced by some YAML
// decoders) into map[string]any so they can be JSON encoded.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

func stringKeys(m map[any]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string key %v (%T)", ErrInvalidStateShape, k, k)
		}
		out[key] = v
	}
	return out, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
