package input

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/notifbar/internal/state"
)

const jsonSnapshot = `{
  "notifications": [
    {"greeting": "House Brave", "message": "The BAT is coming"},
    {"frameOrigin": "https://nespressolovers.com", "message": "nespresso site"}
  ],
  "currentWindow": {
    "activeFrameKey": 1,
    "framesInternal": {"index": {"1": 0}},
    "frames": [{"key": 1, "tabId": 1, "index": 0, "location": "https://nespressolovers.com/coffee"}]
  }
}`

const yamlSnapshot = `notifications:
  - greeting: House Brave
    message: The BAT is coming
  - frameOrigin: https://nespressolovers.com
    message: nespresso site
currentWindow:
  activeFrameKey: 1
  framesInternal:
    index:
      "1": 0
  frames:
    - key: 1
      tabId: 1
      index: 0
      location: https://nespressolovers.com/coffee
`

const tomlSnapshot = `[[notifications]]
greeting = "House Brave"
message = "The BAT is coming"

[[notifications]]
frameOrigin = "https://nespressolovers.com"
message = "nespresso site"

[currentWindow]
activeFrameKey = 1

[currentWindow.framesInternal.index]
"1" = 0

[[currentWindow.frames]]
key = 1
tabId = 1
index = 0
location = "https://nespressolovers.com/coffee"
`

func assertSnapshot(t *testing.T, s *state.State) {
	t.Helper()
	require.NotNil(t, s)
	require.Len(t, s.Notifications, 2)
	assert.Equal(t, "House Brave", s.Notifications[0].GreetingText())
	assert.False(t, s.Notifications[0].HasFrameOrigin())
	assert.Equal(t, "https://nespressolovers.com", s.Notifications[1].Origin())
	assert.Equal(t, "https://nespressolovers.com/coffee", s.ActiveFrame().Location)
	for _, n := range s.Notifications {
		assert.NotEmpty(t, n.ID, "imported notifications get an ID")
	}
}

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json explicit", jsonSnapshot, FormatJSON},
		{"yaml explicit", yamlSnapshot, FormatYAML},
		{"toml explicit", tomlSnapshot, FormatTOML},
		{"json sniffed", jsonSnapshot, FormatAuto},
		{"yaml sniffed", yamlSnapshot, FormatAuto},
		{"toml sniffed", tomlSnapshot, FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assertSnapshot(t, s)
		})
	}
}

func TestDecode_KeepsExistingIDs(t *testing.T) {
	s, err := Decode([]byte(`{"notifications":[{"id":"fixed","greeting":"A"}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "fixed", s.Notifications[0].ID)
}

func TestDecode_StableIDs(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		data := map[Format]string{FormatJSON: jsonSnapshot, FormatYAML: yamlSnapshot, FormatTOML: tomlSnapshot}[format]
		t.Run(string(format), func(t *testing.T) {
			first, err := Decode([]byte(data), format)
			require.NoError(t, err)
			second, err := Decode([]byte(data), format)
			require.NoError(t, err)

			require.Len(t, second.Notifications, len(first.Notifications))
			for i := range first.Notifications {
				assert.Equal(t, first.Notifications[i].ID, second.Notifications[i].ID)
			}
			assert.NotEqual(t, first.Notifications[0].ID, first.Notifications[1].ID)
		})
	}

	// The same notification content decodes to the same ID in every format.
	fromJSON, err := Decode([]byte(jsonSnapshot), FormatJSON)
	require.NoError(t, err)
	fromYAML, err := Decode([]byte(yamlSnapshot), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, fromJSON.Notifications[0].ID, fromYAML.Notifications[0].ID)
}

func TestDecode_KeepsDisplayFields(t *testing.T) {
	data := `{"notifications":[
		{"greeting":"A","message":123,"detail":"keep me"}
	]}`

	s, err := Decode([]byte(data), FormatJSON)
	require.NoError(t, err, "a mistyped display field is not a shape error")
	require.Len(t, s.Notifications, 1)

	n := s.Notifications[0]
	assert.True(t, n.HasGreeting())
	assert.Equal(t, "keep me", n.Extra["detail"])
	assert.Equal(t, float64(123), n.Extra["message"])
}

func TestDecode_NullGreetingIsPresent(t *testing.T) {
	s, err := Decode([]byte("notifications:\n  - greeting:\n    message: hi\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, s.Notifications, 1)
	assert.True(t, s.Notifications[0].HasGreeting())
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"notifications":"oops"}`), FormatJSON)
	assert.ErrorIs(t, err, state.ErrMalformedState)
	assert.NotErrorIs(t, err, state.ErrInvalidStateShape)
}

func TestDecode_InvalidShape(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json array", `[{"greeting":"A"}]`, FormatAuto},
		{"json null", `null`, FormatAuto},
		{"json string", `"state"`, FormatJSON},
		{"yaml list", "- greeting: A\n- frameOrigin: https://x.com\n", FormatYAML},
		{"yaml scalar", "just words", FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, state.ErrInvalidStateShape)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("  \n"), FormatAuto)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Decode([]byte(`{broken`), FormatJSON)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, state.ErrInvalidStateShape)

	_, err = Decode([]byte(`a = `), FormatTOML)
	assert.Error(t, err)

	_, err = Decode([]byte(`{}`), Format("xml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		hasError bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseFormat(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("/tmp/state.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("state.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("state.yaml"))
	assert.Equal(t, FormatTOML, FormatFromPath("state.toml"))
	assert.Equal(t, FormatAuto, FormatFromPath("state.snapshot"))
}

func TestFileAdapter_Load(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"state.json":     jsonSnapshot,
		"state.yaml":     yamlSnapshot,
		"state.toml":     tomlSnapshot,
		"state.snapshot": tomlSnapshot,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			adapter := NewAdapter(path, FormatAuto)
			assert.Equal(t, "file", adapter.Name())

			s, err := adapter.Load(context.Background())
			require.NoError(t, err)
			assertSnapshot(t, s)
		})
	}
}

func TestFileAdapter_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileAdapter(filepath.Join(dir, "missing.json"), FormatAuto).Load(context.Background())
		var adapterErr *AdapterError
		require.ErrorAs(t, err, &adapterErr)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid shape", func(t *testing.T) {
		path := filepath.Join(dir, "list.json")
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

		_, err := NewFileAdapter(path, FormatAuto).Load(context.Background())
		assert.ErrorIs(t, err, state.ErrInvalidStateShape)
		assert.Contains(t, err.Error(), "list.json")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewFileAdapter(filepath.Join(dir, "any.json"), FormatAuto).Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStdinAdapter_Load(t *testing.T) {
	adapter := NewStdinAdapterWithReader(strings.NewReader(yamlSnapshot), FormatAuto)
	assert.Equal(t, "stdin", adapter.Name())

	s, err := adapter.Load(context.Background())
	require.NoError(t, err)
	assertSnapshot(t, s)
}

func TestStdinAdapter_Empty(t *testing.T) {
	_, err := NewStdinAdapterWithReader(strings.NewReader(""), FormatAuto).Load(context.Background())
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAdapters_Oversize(t *testing.T) {
	// A newline-terminated YAML list would still parse if it were cut short.
	line := []byte("  - greeting: A\n")
	data := append([]byte("notifications:\n"), bytes.Repeat(line, maxSnapshotSize/len(line)+1)...)
	require.Greater(t, len(data), maxSnapshotSize)

	t.Run("stdin", func(t *testing.T) {
		_, err := NewStdinAdapterWithReader(bytes.NewReader(data), FormatYAML).Load(context.Background())
		assert.ErrorIs(t, err, ErrSnapshotTooLarge)

		var adapterErr *AdapterError
		assert.ErrorAs(t, err, &adapterErr)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "big.yaml")
		require.NoError(t, os.WriteFile(path, data, 0644))

		_, err := NewFileAdapter(path, FormatAuto).Load(context.Background())
		assert.ErrorIs(t, err, ErrSnapshotTooLarge)
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		got, err := readSnapshot(bytes.NewReader(data[:maxSnapshotSize]))
		require.NoError(t, err)
		assert.Len(t, got, maxSnapshotSize)
	})
}

func TestNewAdapter_Stdin(t *testing.T) {
	assert.Equal(t, "stdin", NewAdapter("", FormatAuto).Name())
	assert.Equal(t, "stdin", NewAdapter(SourceStdin, FormatJSON).Name())
}

func TestAdapterError(t *testing.T) {
	inner := errors.New("boom")
	err := &AdapterError{Source: "stdin", Message: "failed", Err: inner}
	assert.Equal(t, "stdin: failed: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	assert.Equal(t, "x: bare", (&AdapterError{Source: "x", Message: "bare"}).Error())
}
