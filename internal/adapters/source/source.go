// Package source opens checksum targets: local files, stdin and S3 objects.
package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/iamNilotpal/crcsum/internal/core/ports"
)

// Router dispatches each target to the source registered for its URI scheme.
// Targets without a "scheme://" prefix go to the source with an empty scheme.
type Router struct {
	sources map[string]ports.SourcePort
}

// NewRouter registers sources by their Scheme. Later sources replace earlier
// ones with the same scheme.
func NewRouter(sources ...ports.SourcePort) *Router {
	r := &Router{sources: make(map[string]ports.SourcePort, len(sources))}
	for _, src := range sources {
		r.sources[src.Scheme()] = src
	}
	return r
}

func (r *Router) Open(ctx context.Context, target string) (io.ReadCloser, error) {
	scheme := SchemeOf(target)
	src, ok := r.sources[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScheme, scheme)
	}
	return src.Open(ctx, target)
}

// SchemeOf returns the scheme of a "scheme://..." target, or "" for a path.
func SchemeOf(target string) string {
	scheme, _, found := strings.Cut(target, "://")
	if !found || strings.ContainsAny(scheme, `/\`) {
		return ""
	}
	return strings.ToLower(scheme)
}

// ParseObjectURI splits "s3://bucket/key/parts" into bucket and key.
func ParseObjectURI(target string) (bucket, key string, err error) {
	_, rest, found := strings.Cut(target, "://")
	if !found {
		return "", "", fmt.Errorf("not an object URI: %q", target)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("object URI needs a bucket and a key: %q", target)
	}
	return bucket, key, nil
}
