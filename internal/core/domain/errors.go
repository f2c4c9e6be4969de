package domain

import "errors"

var (
	// ErrUnknownScheme is returned for a target URI with no registered source.
	ErrUnknownScheme = errors.New("no source registered for scheme")

	// ErrNotFound is returned when a target does not exist.
	ErrNotFound = errors.New("target not found")

	// ErrSizeMismatch is returned when a target's size differs from the manifest.
	ErrSizeMismatch = errors.New("size differs from manifest")
)
