package input

import (
	"context"
	"io"
	"os"

	"github.com/jmylchreest/notifbar/internal/state"
)

// StdinAdapter reads a snapshot from standard input.
type StdinAdapter struct {
	reader io.Reader
	format Format
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter(format Format) *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin, format: format}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader, format Format) *StdinAdapter {
	return &StdinAdapter{reader: r, format: format}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Load reads the whole of standard input and decodes it as one snapshot.
func (a *StdinAdapter) Load(ctx context.Context) (*state.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readSnapshot(a.reader)
	if err != nil {
		return nil, &AdapterError{Source: "stdin", Message: "failed to read stdin", Err: err}
	}

	s, err := Decode(data, a.format)
	if err != nil {
		return nil, &AdapterError{Source: "stdin", Message: "failed to decode snapshot", Err: err}
	}
	return s, nil
}
