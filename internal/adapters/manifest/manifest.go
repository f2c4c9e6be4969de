// Package manifest reads and writes checksum manifests, in a sha256sum-like
// text form for humans and a compact self-checksummed binary form.
package manifest

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
)

// ErrCorrupt is returned when a manifest cannot be parsed.
var ErrCorrupt = errors.New("manifest corrupt")

// Codec serializes manifests.
type Codec interface {
	Encode(w io.Writer, m *domain.Manifest) error
	Decode(r io.Reader) (*domain.Manifest, error)
}

// ForPath picks the codec by file extension: ".crcm" and ".bin" are binary,
// anything else is text.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".crcm", ".bin":
		return Binary{}
	default:
		return Text{}
	}
}
