// Package store holds the latest state snapshot and tells subscribers when
// the notification selection changes.
package store

import (
	"context"
	"sync"

	"github.com/jmylchreest/notifbar/internal/core"
	"github.com/jmylchreest/notifbar/internal/model"
	"github.com/jmylchreest/notifbar/internal/state"
)

// Loader produces a validated snapshot. input.SnapshotAdapter satisfies it.
type Loader interface {
	Load(ctx context.Context) (*state.State, error)
}

// ChangeType indicates the type of store change.
type ChangeType int

const (
	// ChangeTypeLoad indicates a snapshot was loaded and the selection changed.
	ChangeTypeLoad ChangeType = iota
	// ChangeTypeError indicates a reload failed; the previous snapshot is kept.
	ChangeTypeError
)

// ChangeEvent signals store content changes.
type ChangeEvent struct {
	Type    ChangeType
	Summary core.Summary
	Err     error
}

// Store keeps the most recent snapshot. Snapshots are replaced wholesale,
// never modified, so readers can keep using a *state.State they were given.
type Store struct {
	mu      sync.RWMutex
	loader  Loader
	current *state.State
	summary core.Summary
	loaded  bool
	version uint64

	subscribers []chan ChangeEvent
	closed      bool
}

// NewStore creates a new Store backed by loader.
func NewStore(loader Loader) *Store {
	return &Store{
		loader:      loader,
		subscribers: make([]chan ChangeEvent, 0),
	}
}

// Reload loads a fresh snapshot and swaps it in.
// Subscribers are notified when the summary differs from the previous one,
// or on the first successful load. A failed load keeps the old snapshot.
func (s *Store) Reload(ctx context.Context) error {
	if s.loader == nil {
		return ErrNoLoader
	}

	next, err := s.loader.Load(ctx)
	if err == nil {
		return s.Set(next)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.notifyChange(ChangeEvent{Type: ChangeTypeError, Summary: s.summary, Err: err})
	return err
}

// Set replaces the current snapshot with next.
func (s *Store) Set(next *state.State) error {
	summary, err := core.Summarize(next)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	changed := !s.loaded || summary != s.summary
	s.current = next
	s.summary = summary
	s.loaded = true
	s.version++

	if changed {
		s.notifyChange(ChangeEvent{Type: ChangeTypeLoad, Summary: summary})
	}
	return nil
}

// Current returns the current snapshot, or nil before the first load.
func (s *Store) Current() *state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Summary returns the summary of the current snapshot.
func (s *Store) Summary() core.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Version returns how many snapshots have been swapped in.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Select runs the selector for scope against the current snapshot.
func (s *Store) Select(scope core.Scope) ([]model.Notification, error) {
	current := s.Current()
	if current == nil {
		return nil, ErrNotLoaded
	}
	return core.Select(current, scope)
}

// Subscribe returns a channel that receives change events.
func (s *Store) Subscribe() <-chan ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	if s.closed {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (s *Store) Unsubscribe(ch <-chan ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			close(sub)
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// Close closes all subscriber channels. Further loads fail with ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil
	return nil
}

// notifyChange must be called with s.mu held.
func (s *Store) notifyChange(event ChangeEvent) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// Store errors.
var (
	ErrStoreClosed = storeError("store is closed")
	ErrNoLoader    = storeError("store has no loader")
	ErrNotLoaded   = storeError("no snapshot loaded")
)

type storeError string

func (e storeError) Error() string {
	return string(e)
}
