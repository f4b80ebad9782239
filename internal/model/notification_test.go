package model

import (
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedID(t *testing.T) {
	n := &Notification{FrameOrigin: StringPtr("https://x.com"), Message: "hello"}

	id, err := DerivedID(0, n)
	require.NoError(t, err)
	_, err = ulid.Parse(id)
	assert.NoError(t, err, "ID should be a valid ULID")

	again, err := DerivedID(0, n.Clone())
	require.NoError(t, err)
	assert.Equal(t, id, again, "same position and content give the same ID")

	tests := []struct {
		name     string
		position int
		n        *Notification
	}{
		{"other position", 1, n},
		{"other message", 0, &Notification{FrameOrigin: StringPtr("https://x.com"), Message: "bye"}},
		{"greeting instead of origin", 0, &Notification{Greeting: StringPtr("https://x.com"), Message: "hello"}},
		{"empty origin differs from none", 0, &Notification{FrameOrigin: StringPtr(""), Message: "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := DerivedID(tt.position, tt.n)
			require.NoError(t, err)
			assert.NotEqual(t, id, other)
		})
	}

	assert.NotEqual(t, mustDerive(t, 0, &Notification{}), mustDerive(t, 0, &Notification{FrameOrigin: StringPtr("")}))
}

func mustDerive(t *testing.T, position int, n *Notification) string {
	t.Helper()
	id, err := DerivedID(position, n)
	require.NoError(t, err)
	return id
}

func TestNotification_EnsureID(t *testing.T) {
	t.Run("assigns when empty", func(t *testing.T) {
		n := &Notification{Message: "hello"}
		require.NoError(t, n.EnsureID(3))
		assert.Equal(t, mustDerive(t, 3, &Notification{Message: "hello"}), n.ID)
	})

	t.Run("keeps existing", func(t *testing.T) {
		n := &Notification{ID: "keep-me"}
		require.NoError(t, n.EnsureID(0))
		assert.Equal(t, "keep-me", n.ID)
	})
}

func TestNotification_Presence(t *testing.T) {
	tests := []struct {
		name        string
		n           Notification
		hasOrigin   bool
		hasGreeting bool
	}{
		{"empty", Notification{}, false, false},
		{"origin", Notification{FrameOrigin: StringPtr("https://x.com")}, true, false},
		{"greeting", Notification{Greeting: StringPtr("A")}, false, true},
		{"both", Notification{FrameOrigin: StringPtr("https://x.com"), Greeting: StringPtr("A")}, true, true},
		{"empty strings still present", Notification{FrameOrigin: StringPtr(""), Greeting: StringPtr("")}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasOrigin, tt.n.HasFrameOrigin())
			assert.Equal(t, tt.hasGreeting, tt.n.HasGreeting())
		})
	}
}

func TestNotification_JSONPresence(t *testing.T) {
	var n Notification
	err := json.Unmarshal([]byte(`{"greeting":"House Brave","message":"The BAT is coming"}`), &n)
	require.NoError(t, err)

	assert.True(t, n.HasGreeting())
	assert.False(t, n.HasFrameOrigin())
	assert.Equal(t, "House Brave", n.GreetingText())
	assert.Equal(t, "", n.Origin())
}

func TestNotification_Persist(t *testing.T) {
	assert.False(t, (&Notification{}).Persist())
	assert.False(t, (&Notification{Options: &Options{}}).Persist())
	assert.True(t, (&Notification{Options: &Options{Persist: true}}).Persist())
}

func TestNotification_MessageTruncated(t *testing.T) {
	tests := []struct {
		name    string
		message string
		maxLen  int
		want    string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"whitespace collapsed", "a\n\nb   c", 10, "a b c"},
		{"zero", "hello", 0, ""},
		{"tiny", "hello", 2, "he"},
		{"multibyte", "héllo wörld ☕", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Notification{Message: tt.message}
			assert.Equal(t, tt.want, n.MessageTruncated(tt.maxLen))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"unlimited", "hello", 0, "hello"},
		{"fits", "hello", 5, "hello"},
		{"ascii", "hello world", 8, "hello..."},
		{"counts runes not bytes", "☕☕☕☕", 4, "☕☕☕☕"},
		{"cuts on rune boundary", "☕☕☕☕☕☕", 5, "☕☕..."},
		{"tiny multibyte", "日本語テキスト", 2, "日本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.s, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestNotification_Clone(t *testing.T) {
	original := &Notification{
		ID:          "1",
		FrameOrigin: StringPtr("https://x.com"),
		Greeting:    StringPtr("hi"),
		Message:     "msg",
		Buttons:     []Button{{Text: "OK"}},
		Options:     &Options{Persist: true},
		Extra:       map[string]any{"detail": "keep me"},
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	*clone.FrameOrigin = "https://y.com"
	*clone.Greeting = "bye"
	clone.Buttons[0].Text = "Cancel"
	clone.Options.Persist = false
	clone.Extra["detail"] = "changed"

	assert.Equal(t, "https://x.com", original.Origin())
	assert.Equal(t, "hi", original.GreetingText())
	assert.Equal(t, "OK", original.Buttons[0].Text)
	assert.True(t, original.Options.Persist)
	assert.Equal(t, "keep me", original.Extra["detail"])
}
