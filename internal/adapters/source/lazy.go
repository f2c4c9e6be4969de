package source

import (
	"context"
	"io"
	"sync"

	"github.com/iamNilotpal/crcsum/internal/core/ports"
)

// Lazy defers building a source until its first Open, so credentials and
// clients are only resolved when a target actually needs them. A build error
// is returned from every Open.
type Lazy struct {
	scheme string
	build  func(context.Context) (ports.SourcePort, error)

	once sync.Once
	src  ports.SourcePort
	err  error
}

func NewLazy(scheme string, build func(context.Context) (ports.SourcePort, error)) *Lazy {
	return &Lazy{scheme: scheme, build: build}
}

func (l *Lazy) Open(ctx context.Context, target string) (io.ReadCloser, error) {
	l.once.Do(func() {
		l.src, l.err = l.build(ctx)
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.src.Open(ctx, target)
}

func (l *Lazy) Scheme() string {
	return l.scheme
}
