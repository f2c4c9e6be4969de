package ports

import (
	"context"
	"io"
)

// SourcePort opens targets for reading.
type SourcePort interface {
	// Open returns a reader over the target's bytes.
	Open(ctx context.Context, target string) (io.ReadCloser, error)

	// Scheme returns the URI scheme served, or "" for local paths.
	Scheme() string
}
