package scanner

import (
	"github.com/iamNilotpal/crcsum/internal/adapters/checksum"
	"github.com/iamNilotpal/crcsum/internal/adapters/compression"
	"github.com/iamNilotpal/crcsum/internal/adapters/source"
	"github.com/iamNilotpal/crcsum/pkg/logger"
)

const (
	DefaultReadSize    = 256 * 1024      // 256KB
	DefaultBlockSize   = 4 * 1024 * 1024 // 4MB
	DefaultConcurrency = 4

	MinReadSize    = 4 * 1024         // 4KB
	MaxReadSize    = 16 * 1024 * 1024 // 16MB
	MaxConcurrency = 256
)

// Returns Options with recommended defaults: the bulk engine, stored bytes,
// 4MB block checksums and four targets in flight.
func DefaultOptions() *Options {
	return &Options{
		BlockSize:   DefaultBlockSize,
		ReadSize:    DefaultReadSize,
		Concurrency: DefaultConcurrency,
	}
}

func prepareDefaults(opts *Options) *Options {
	if opts.ReadSize == 0 {
		opts.ReadSize = DefaultReadSize
	}

	if opts.Concurrency == 0 {
		opts.Concurrency = DefaultConcurrency
	}

	if opts.Checksum == nil {
		opts.Checksum = checksum.DefaultOptions()
	}

	if opts.Compression == nil {
		opts.Compression = compression.DefaultOptions()
	}

	if opts.Source == nil {
		opts.Source = source.NewRouter(source.NewFile(nil))
	}

	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	return opts
}
