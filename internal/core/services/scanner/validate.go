package scanner

import (
	"fmt"

	"github.com/iamNilotpal/crcsum/internal/adapters/checksum"
	"github.com/iamNilotpal/crcsum/internal/adapters/compression"
	validation "github.com/iamNilotpal/crcsum/pkg/errors"
)

// Validate checks opts before defaults are applied; zero values are allowed.
func Validate(opts *Options) error {
	if opts.ReadSize != 0 && (opts.ReadSize < MinReadSize || opts.ReadSize > MaxReadSize) {
		return validation.NewValidationError(
			"read_size", opts.ReadSize, fmt.Errorf("must be between %d and %d bytes", MinReadSize, MaxReadSize),
		)
	}

	if opts.Concurrency < 0 || opts.Concurrency > MaxConcurrency {
		return validation.NewValidationError(
			"concurrency", opts.Concurrency, fmt.Errorf("must be between 0 and %d", MaxConcurrency),
		)
	}

	if opts.RateLimit < 0 {
		return validation.NewValidationError("rate_limit", opts.RateLimit, fmt.Errorf("must not be negative"))
	}

	if opts.Checksum != nil {
		if err := checksum.Validate(opts.Checksum); err != nil {
			return err
		}
	}

	if opts.Compression != nil {
		if err := compression.Validate(opts.Compression); err != nil {
			return err
		}
	}

	return nil
}
