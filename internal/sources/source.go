package sources

import (
	"context"
	"io"
)

// Stream is an opened byte source with a cursor and a known total length.
type Stream interface {
	io.ReadSeekCloser
	Size() int64
}

// Source is the local side of an upload. Every Open returns a fresh stream
// positioned at offset 0.
type Source interface {
	Open(ctx context.Context) (Stream, error)
}

// Fingerprinter is implemented by sources that can identify their content
// across process restarts.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}
