// Package scanner computes and verifies CRC-32 manifests over files, stdin and object storage.
package scanner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
	"github.com/iamNilotpal/crcsum/internal/adapters/checksum"
	"github.com/iamNilotpal/crcsum/internal/adapters/compression"
	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/iamNilotpal/crcsum/internal/core/ports"
	scanerr "github.com/iamNilotpal/crcsum/pkg/errors"
	"github.com/iamNilotpal/crcsum/pkg/pool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Options configures a Scanner.
type Options struct {
	// Checksum selects the CRC-32 engine.
	Checksum *domain.ChecksumOptions

	// Compression selects how targets are decoded before checksumming.
	Compression *domain.CompressionOptions

	// BlockSize is the span covered by each block checksum.
	// Zero records whole-target checksums only.
	BlockSize uint32

	// ReadSize is the size of each read from a target.
	//
	// Default: 256KB
	ReadSize int

	// Concurrency bounds how many targets are read at once.
	//
	// Default: 4
	Concurrency int

	// RateLimit caps the combined read throughput in bytes per second.
	// Zero means unlimited.
	RateLimit int64

	// Source opens targets. Defaults to local files and stdin.
	Source ports.SourcePort

	Logger *zap.SugaredLogger
}

// Scanner computes manifests and verifies targets against them.
// It is safe for concurrent use.
type Scanner struct {
	options  *Options
	checksum ports.ChecksumPort
	buffers  *pool.BufferPool
	limiter  *rate.Limiter // nil when unlimited
	log      *zap.SugaredLogger
}

// digest is what reading one target produces.
type digest struct {
	size   uint64
	crc    uint32
	blocks []uint32
}

func New(opts *Options) (*Scanner, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := Validate(opts); err != nil {
		return nil, err
	}
	opts = prepareDefaults(opts)

	port, err := checksum.New(opts.Checksum)
	if err != nil {
		return nil, err
	}

	s := &Scanner{
		options:  opts,
		checksum: port,
		buffers:  pool.NewBufferPool(opts.ReadSize),
		log:      opts.Logger,
	}

	if opts.RateLimit > 0 {
		// WaitN rejects requests larger than the burst, so it must fit one read.
		burst := max(int(opts.RateLimit), opts.ReadSize)
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return s, nil
}

// Sum checksums every target and returns a manifest listing them in input
// order. Targets that fail are left out of the manifest and reported in the
// returned error, which joins one *errors.ScanError per failure. The manifest
// is non-nil unless ctx was cancelled.
func (s *Scanner) Sum(ctx context.Context, targets []string) (*domain.Manifest, error) {
	started := time.Now()
	digests := make([]*digest, len(targets))
	failures := make([]error, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.Concurrency)

	for i, target := range targets {
		g.Go(func() error {
			d, err := s.read(gctx, target, s.options.Compression.Codec, s.options.BlockSize)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.log.Warnw("checksum failed", "target", target, "error", err)
				failures[i] = err
				return nil
			}

			s.log.Debugw("checksum computed", "target", target, "size", d.size, "crc", fmt.Sprintf("%08x", d.crc))
			digests[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &domain.Manifest{
		ID:        uuid.NewString(),
		CreatedAt: started.UTC(),
		Engine:    domain.Engine(s.checksum.Name()),
		Codec:     s.options.Compression.Codec,
		BlockSize: s.options.BlockSize,
		Entries:   make([]domain.ManifestEntry, 0, len(targets)),
	}
	for i, d := range digests {
		if d == nil {
			continue
		}
		m.Entries = append(m.Entries, domain.ManifestEntry{
			Path:   targets[i],
			Size:   d.size,
			CRC:    d.crc,
			Blocks: d.blocks,
		})
	}

	err := errors.Join(failures...)
	s.log.Infow("scan finished",
		"manifest", m.ID, "targets", len(targets), "failed", len(targets)-len(m.Entries),
		"elapsed", time.Since(started),
	)
	return m, err
}

// Verify recomputes every entry of m using m's codec and block size and
// reports, in manifest order, whether each still matches. Unreadable targets
// are reported with Err set; the returned error is only non-nil when ctx is
// cancelled.
func (s *Scanner) Verify(ctx context.Context, m *domain.Manifest) ([]domain.Report, error) {
	codec := m.Codec
	if codec == "" {
		codec = compression.None
	}

	reports := make([]domain.Report, len(m.Entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.Concurrency)

	for i := range m.Entries {
		entry := &m.Entries[i]
		g.Go(func() error {
			report := domain.Report{Path: entry.Path, Expected: entry.CRC}

			d, err := s.read(gctx, entry.Path, codec, m.BlockSize)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				report.Err = err
				reports[i] = report
				return nil
			}

			report.Size, report.CRC = d.size, d.crc
			report.OK = d.size == entry.Size && d.crc == entry.CRC
			if len(entry.Blocks) > 0 {
				report.CorruptBlocks = corruptBlocks(entry.Blocks, d.blocks)
			}
			if !report.OK {
				cause := fmt.Errorf("crc %08x, want %08x", d.crc, entry.CRC)
				if d.size != entry.Size {
					cause = fmt.Errorf("%w: %d bytes, want %d", domain.ErrSizeMismatch, d.size, entry.Size)
				}
				report.Err = scanerr.NewScanError(scanerr.ErrorMismatch, "verify", entry.Path, cause)
				s.log.Warnw("checksum mismatch", "target", entry.Path, "error", cause)
			}

			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// corruptBlocks returns the indices where got differs from want, including
// blocks present in only one of them.
func corruptBlocks(want, got []uint32) *roaring.Bitmap {
	bm := roaring.New()
	for i := 0; i < max(len(want), len(got)); i++ {
		if i >= len(want) || i >= len(got) || want[i] != got[i] {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// read opens, decodes and checksums one target.
func (s *Scanner) read(ctx context.Context, target string, codec domain.Codec, blockSize uint32) (*digest, error) {
	src, err := s.options.Source.Open(ctx, target)
	if err != nil {
		return nil, scanerr.NewScanError(scanerr.ErrorSource, "open", target, err)
	}
	defer src.Close()

	var r io.Reader = src
	if codec == compression.Auto {
		br := bufio.NewReaderSize(src, max(compression.HeaderSize, 16))
		// A short or empty target simply yields a short header.
		header, _ := br.Peek(compression.HeaderSize)
		codec = compression.Detect(target, header)
		r = br
	}

	decoder, err := compression.New(codec, s.options.Compression)
	if err != nil {
		return nil, scanerr.NewScanError(scanerr.ErrorDecode, "decode", target, err)
	}
	dr, err := decoder.NewReader(r)
	if err != nil {
		return nil, scanerr.NewScanError(scanerr.ErrorDecode, "decode", target, err)
	}
	defer dr.Close()

	d, err := s.digest(ctx, dr, blockSize)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		category := scanerr.ErrorSource
		if codec != compression.None {
			category = scanerr.ErrorDecode
		}
		return nil, scanerr.NewScanError(category, "read", target, err)
	}
	return d, nil
}

// digest streams r through the checksum port. The whole-target CRC is
// chained across reads; each block CRC restarts from 0 at a block boundary.
func (s *Scanner) digest(ctx context.Context, r io.Reader, blockSize uint32) (*digest, error) {
	bufp := s.buffers.Get()
	defer s.buffers.Put(bufp)
	buf := *bufp

	d := &digest{}
	var block uint32 // checksum of the current partial block
	var inBlock uint64

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			if s.limiter != nil {
				if werr := s.limiter.WaitN(ctx, n); werr != nil {
					return nil, werr
				}
			}

			chunk := buf[:n]
			d.crc = s.checksum.Update(d.crc, chunk)
			d.size += uint64(n)

			for blockSize > 0 && len(chunk) > 0 {
				take := min(uint64(len(chunk)), uint64(blockSize)-inBlock)
				block = s.checksum.Update(block, chunk[:take])
				inBlock += take
				chunk = chunk[take:]

				if inBlock == uint64(blockSize) {
					d.blocks = append(d.blocks, block)
					block, inBlock = 0, 0
				}
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if inBlock > 0 {
		d.blocks = append(d.blocks, block)
	}
	return d, nil
}
