package model

import (
	"bytes"
	"encoding/json"
)

// Wire keys of the fields Notification models directly.
const (
	keyID          = "id"
	keyFrameOrigin = "frameOrigin"
	keyGreeting    = "greeting"
	keyMessage     = "message"
	keyPosition    = "position"
	keyButtons     = "buttons"
	keyOptions     = "options"
)

// UnmarshalJSON decodes a notification object. Keys that are not modelled
// go to Extra. A known display key whose value has the wrong type is kept in
// Extra too rather than failing the whole snapshot.
func (n *Notification) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*n = Notification{}
	for key, value := range raw {
		var ok bool
		switch key {
		case keyID:
			ok = decodeField(value, &n.ID)
		case keyFrameOrigin:
			n.FrameOrigin, ok = decodeMarker(value), true
		case keyGreeting:
			n.Greeting, ok = decodeMarker(value), true
		case keyMessage:
			ok = decodeField(value, &n.Message)
		case keyPosition:
			ok = decodeField(value, &n.Position)
		case keyButtons:
			ok = decodeField(value, &n.Buttons)
		case keyOptions:
			ok = decodeField(value, &n.Options)
		}
		if ok {
			continue
		}

		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return err
		}
		if n.Extra == nil {
			n.Extra = make(map[string]any)
		}
		n.Extra[key] = v
	}
	return nil
}

// decodeField sets *dst only when value decodes cleanly, so a partly
// decoded value never leaks into the notification.
func decodeField[T any](value json.RawMessage, dst *T) bool {
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

// decodeMarker turns a scope marker value into a present *string. Null
// becomes the empty string; other non-string values keep their JSON text.
func decodeMarker(value json.RawMessage) *string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return &s
	}
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return StringPtr("")
	}
	return StringPtr(string(bytes.TrimSpace(value)))
}

// MarshalJSON encodes the modelled fields merged over Extra.
func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.fields())
}

// MarshalYAML encodes the same fields as MarshalJSON.
func (n Notification) MarshalYAML() (any, error) {
	return n.fields(), nil
}

// fields flattens n into a single map. Modelled fields win over Extra.
func (n *Notification) fields() map[string]any {
	out := make(map[string]any, len(n.Extra)+7)
	for k, v := range n.Extra {
		out[k] = v
	}

	if n.ID != "" {
		out[keyID] = n.ID
	}
	if n.FrameOrigin != nil {
		out[keyFrameOrigin] = *n.FrameOrigin
	}
	if n.Greeting != nil {
		out[keyGreeting] = *n.Greeting
	}
	if n.Message != "" {
		out[keyMessage] = n.Message
	}
	if n.Position != "" {
		out[keyPosition] = n.Position
	}
	if len(n.Buttons) > 0 {
		out[keyButtons] = n.Buttons
	}
	if n.Options != nil {
		out[keyOptions] = n.Options
	}
	return out
}
