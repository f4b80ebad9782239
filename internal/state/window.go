package state

import "strconv"

// WindowState is the per-window part of the snapshot.
type WindowState struct {
	Frames         []Frame        `json:"frames,omitempty" yaml:"frames,omitempty"`
	ActiveFrameKey int            `json:"activeFrameKey,omitempty" yaml:"activeFrameKey,omitempty"`
	FramesInternal FramesInternal `json:"framesInternal,omitempty" yaml:"framesInternal,omitempty"`
	Tabs           []Tab          `json:"tabs,omitempty" yaml:"tabs,omitempty"`
}

// FramesInternal holds lookup indexes keyed by the frame key as a string.
type FramesInternal struct {
	Index    map[string]int `json:"index,omitempty" yaml:"index,omitempty"`
	TabIndex map[string]int `json:"tabIndex,omitempty" yaml:"tabIndex,omitempty"`
}

// Frame is a single tab's content frame.
type Frame struct {
	Key      int    `json:"key,omitempty" yaml:"key,omitempty"`
	TabID    int    `json:"tabId,omitempty" yaml:"tabId,omitempty"`
	Index    int    `json:"index,omitempty" yaml:"index,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Tab is the tab strip entry for a frame.
type Tab struct {
	Key   int `json:"key,omitempty" yaml:"key,omitempty"`
	Index int `json:"index,omitempty" yaml:"index,omitempty"`
}

// IsEmpty reports whether f is the zero frame returned when nothing is active.
func (f Frame) IsEmpty() bool {
	return f == Frame{}
}

// GetActiveFrame returns the focused frame of w, or an empty Frame.
// The key is resolved through framesInternal.index first; a missing or stale
// index entry falls back to scanning frames by key.
func GetActiveFrame(w *WindowState) Frame {
	if w == nil || len(w.Frames) == 0 {
		return Frame{}
	}

	if idx, ok := w.FramesInternal.Index[strconv.Itoa(w.ActiveFrameKey)]; ok {
		if idx >= 0 && idx < len(w.Frames) && w.Frames[idx].Key == w.ActiveFrameKey {
			return w.Frames[idx]
		}
	}

	for _, f := range w.Frames {
		if f.Key == w.ActiveFrameKey {
			return f
		}
	}
	return Frame{}
}

// ActiveFrame returns the focused frame of the current window.
func (s *State) ActiveFrame() Frame {
	if s == nil {
		return Frame{}
	}
	return GetActiveFrame(s.CurrentWindow)
}
