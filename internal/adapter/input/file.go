package input

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/jmylchreest/notifbar/internal/state"
)

// maxSnapshotSize caps how much a single snapshot read may consume.
const maxSnapshotSize = 10 * 1024 * 1024 // 10MB

// ErrSnapshotTooLarge is returned when a source holds more than maxSnapshotSize bytes.
var ErrSnapshotTooLarge = errors.New("snapshot exceeds 10MB")

// readSnapshot reads all of r, failing instead of truncating past the size cap.
func readSnapshot(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSnapshotSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxSnapshotSize {
		return nil, ErrSnapshotTooLarge
	}
	return data, nil
}

// FileAdapter loads a snapshot from a file on disk.
type FileAdapter struct {
	path   string
	format Format
}

// NewFileAdapter creates a FileAdapter. With FormatAuto the format is taken
// from the file extension, falling back to content sniffing.
func NewFileAdapter(path string, format Format) *FileAdapter {
	if format == "" || format == FormatAuto {
		format = FormatFromPath(path)
	}
	return &FileAdapter{path: path, format: format}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Path returns the snapshot file path.
func (a *FileAdapter) Path() string {
	return a.path
}

// Load reads and decodes the snapshot file.
func (a *FileAdapter) Load(ctx context.Context) (*state.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(a.path)
	if err != nil {
		return nil, &AdapterError{Source: a.path, Message: "failed to open snapshot", Err: err}
	}
	defer f.Close()

	data, err := readSnapshot(f)
	if err != nil {
		return nil, &AdapterError{Source: a.path, Message: "failed to read snapshot", Err: err}
	}

	s, err := Decode(data, a.format)
	if err != nil {
		return nil, &AdapterError{Source: a.path, Message: "failed to decode snapshot", Err: err}
	}
	return s, nil
}
