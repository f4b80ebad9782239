package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/notifbar/internal/model"
)

func TestLookupByID(t *testing.T) {
	notifications := []model.Notification{
		{ID: "abc123", Message: "first"},
		{ID: "def456", Message: "second"},
		{ID: "ghi789", Message: "third"},
	}

	t.Run("found", func(t *testing.T) {
		result := LookupByID(notifications, "def456")
		assert.NotNil(t, result)
		assert.Equal(t, "second", result.Message)
	})

	t.Run("not found", func(t *testing.T) {
		result := LookupByID(notifications, "notexist")
		assert.Nil(t, result)
	})

	t.Run("empty slice", func(t *testing.T) {
		result := LookupByID(nil, "abc123")
		assert.Nil(t, result)
	})
}

func TestLookupByIndex(t *testing.T) {
	notifications := []model.Notification{
		{ID: "1", Message: "first"},
		{ID: "2", Message: "second"},
		{ID: "3", Message: "third"},
	}

	t.Run("valid index 1", func(t *testing.T) {
		result := LookupByIndex(notifications, 1)
		assert.NotNil(t, result)
		assert.Equal(t, "first", result.Message)
	})

	t.Run("valid index 3", func(t *testing.T) {
		result := LookupByIndex(notifications, 3)
		assert.NotNil(t, result)
		assert.Equal(t, "third", result.Message)
	})

	t.Run("index 0 invalid", func(t *testing.T) {
		assert.Nil(t, LookupByIndex(notifications, 0))
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Nil(t, LookupByIndex(notifications, 4))
	})
}

func TestSearch(t *testing.T) {
	notifications := []model.Notification{
		{ID: "1", Greeting: model.StringPtr("House Brave"), Message: "The BAT is coming"},
		{ID: "2", FrameOrigin: model.StringPtr("https://x.com"), Message: "Save password?"},
		{ID: "3", FrameOrigin: model.StringPtr("https://y.com"), Message: "Allow notifications?"},
	}

	t.Run("empty term returns all", func(t *testing.T) {
		assert.Len(t, Search(notifications, ""), 3)
	})

	t.Run("matches message case-insensitively", func(t *testing.T) {
		result := Search(notifications, "PASSWORD")
		assert.Len(t, result, 1)
		assert.Equal(t, "2", result[0].ID)
	})

	t.Run("matches greeting", func(t *testing.T) {
		result := Search(notifications, "brave")
		assert.Len(t, result, 1)
		assert.Equal(t, "1", result[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Search(notifications, "nothing"))
	})
}

func TestUniqueOrigins(t *testing.T) {
	notifications := []model.Notification{
		{FrameOrigin: model.StringPtr("https://y.com")},
		{Greeting: model.StringPtr("hi")},
		{FrameOrigin: model.StringPtr("https://x.com")},
		{FrameOrigin: model.StringPtr("https://y.com")},
	}

	assert.Equal(t, []string{"https://y.com", "https://x.com"}, UniqueOrigins(notifications))
	assert.Nil(t, UniqueOrigins(nil))
}
