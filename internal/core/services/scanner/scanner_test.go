package scanner

import (
	"bytes"
	"context"
	"errors"
	stdcrc "hash/crc32"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iamNilotpal/crcsum/internal/adapters/checksum"
	"github.com/iamNilotpal/crcsum/internal/adapters/compression"
	"github.com/iamNilotpal/crcsum/internal/core/domain"
	scanerr "github.com/iamNilotpal/crcsum/pkg/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func randomBytes(n int, seed int64) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}

func blockSums(data []byte, size int) []uint32 {
	var out []uint32
	for len(data) > 0 {
		n := min(size, len(data))
		out = append(out, stdcrc.ChecksumIEEE(data[:n]))
		data = data[n:]
	}
	return out
}

func TestSum(t *testing.T) {
	dir := t.TempDir()
	big := randomBytes(100_000, 1)
	paths := []string{
		writeFile(t, dir, "big.bin", big),
		writeFile(t, dir, "empty", nil),
		writeFile(t, dir, "hello.txt", []byte("Hello")),
	}

	for _, engine := range []domain.Engine{checksum.Bytewise, checksum.Bulk} {
		t.Run(string(engine), func(t *testing.T) {
			s, err := New(&Options{
				Checksum:  &domain.ChecksumOptions{Engine: engine},
				BlockSize: 30_000,
				ReadSize:  MinReadSize,
			})
			require.NoError(t, err)

			m, err := s.Sum(context.Background(), paths)
			require.NoError(t, err)

			assert.NotEmpty(t, m.ID)
			assert.Equal(t, engine, m.Engine)
			assert.Equal(t, uint32(30_000), m.BlockSize)
			require.Len(t, m.Entries, 3)

			assert.Equal(t, domain.ManifestEntry{
				Path: paths[0], Size: uint64(len(big)), CRC: stdcrc.ChecksumIEEE(big), Blocks: blockSums(big, 30_000),
			}, m.Entries[0])
			assert.Len(t, m.Entries[0].Blocks, 4)

			assert.Equal(t, domain.ManifestEntry{Path: paths[1]}, m.Entries[1])
			assert.Equal(t, uint32(0xf7d18982), m.Entries[2].CRC)
			assert.Equal(t, []uint32{0xf7d18982}, m.Entries[2].Blocks)
		})
	}
}

func TestSumReportsFailures(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok", []byte("Hello"))
	missing := filepath.Join(dir, "missing")

	s, err := New(nil)
	require.NoError(t, err)

	m, err := s.Sum(context.Background(), []string{missing, ok})
	require.Error(t, err)
	require.NotNil(t, m)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, ok, m.Entries[0].Path)

	var se *scanerr.ScanError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scanerr.ErrorSource, se.Category)
	assert.Equal(t, missing, se.Target)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	data := randomBytes(40_000, 2)
	path := writeFile(t, dir, "data.bin", data)
	same := writeFile(t, dir, "same.bin", []byte("unchanged"))

	s, err := New(&Options{BlockSize: 10_000})
	require.NoError(t, err)
	ctx := context.Background()

	m, err := s.Sum(ctx, []string{path, same})
	require.NoError(t, err)

	reports, err := s.Verify(ctx, m)
	require.NoError(t, err)
	for _, r := range reports {
		assert.True(t, r.OK, r.Path)
		assert.NoError(t, r.Err)
		assert.True(t, r.CorruptBlocks.IsEmpty())
	}

	// Flip one byte in the third block.
	data[25_000] ^= 1
	writeFile(t, dir, "data.bin", data)

	reports, err = s.Verify(ctx, m)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	bad := reports[0]
	assert.False(t, bad.OK)
	assert.Equal(t, m.Entries[0].CRC, bad.Expected)
	assert.NotEqual(t, bad.Expected, bad.CRC)
	assert.Equal(t, []uint32{2}, bad.CorruptBlocks.ToArray())

	var se *scanerr.ScanError
	require.True(t, errors.As(bad.Err, &se))
	assert.Equal(t, scanerr.ErrorMismatch, se.Category)

	assert.True(t, reports[1].OK)
}

func TestVerifyTruncatedAndMissing(t *testing.T) {
	dir := t.TempDir()
	data := randomBytes(25_000, 3)
	path := writeFile(t, dir, "data.bin", data)
	gone := writeFile(t, dir, "gone.bin", []byte("bye"))

	s, err := New(&Options{BlockSize: 10_000})
	require.NoError(t, err)
	ctx := context.Background()

	m, err := s.Sum(ctx, []string{path, gone})
	require.NoError(t, err)

	writeFile(t, dir, "data.bin", data[:15_000])
	require.NoError(t, os.Remove(gone))

	reports, err := s.Verify(ctx, m)
	require.NoError(t, err)

	assert.False(t, reports[0].OK)
	assert.ErrorIs(t, reports[0].Err, domain.ErrSizeMismatch)
	// Block 1 is now short, block 2 is gone.
	assert.Equal(t, []uint32{1, 2}, reports[0].CorruptBlocks.ToArray())

	assert.False(t, reports[1].OK)
	assert.ErrorIs(t, reports[1].Err, domain.ErrNotFound)
	assert.Nil(t, reports[1].CorruptBlocks)
}

func TestSumDecompresses(t *testing.T) {
	dir := t.TempDir()
	plain := bytes.Repeat([]byte("compressible content\n"), 5000)

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(plain, nil)
	require.NoError(t, enc.Close())

	named := writeFile(t, dir, "log.zst", compressed)
	unnamed := writeFile(t, dir, "log.data", compressed)
	text := writeFile(t, dir, "notes.txt", []byte("Hello"))

	s, err := New(&Options{Compression: &domain.CompressionOptions{Codec: compression.Auto}})
	require.NoError(t, err)

	m, err := s.Sum(context.Background(), []string{named, unnamed, text})
	require.NoError(t, err)
	require.Len(t, m.Entries, 3)

	want := stdcrc.ChecksumIEEE(plain)
	assert.Equal(t, want, m.Entries[0].CRC)
	assert.Equal(t, want, m.Entries[1].CRC)
	assert.Equal(t, uint64(len(plain)), m.Entries[1].Size)
	assert.Equal(t, uint32(0xf7d18982), m.Entries[2].CRC)
	assert.Equal(t, compression.Auto, m.Codec)

	reports, err := s.Verify(context.Background(), m)
	require.NoError(t, err)
	for _, r := range reports {
		assert.True(t, r.OK, r.Path)
	}
}

func TestSumDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fake.gz", []byte("not gzip at all"))

	s, err := New(&Options{Compression: &domain.CompressionOptions{Codec: compression.Auto}})
	require.NoError(t, err)

	_, err = s.Sum(context.Background(), []string{path})
	var se *scanerr.ScanError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scanerr.ErrorDecode, se.Category)
}

type stubSource struct {
	data map[string]string
}

func (s stubSource) Open(_ context.Context, target string) (io.ReadCloser, error) {
	body, ok := s.data[target]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (stubSource) Scheme() string { return "s3" }

func TestCustomSource(t *testing.T) {
	s, err := New(&Options{Source: stubSource{data: map[string]string{"s3://b/k": "123456789"}}})
	require.NoError(t, err)

	m, err := s.Sum(context.Background(), []string{"s3://b/k"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0xcbf43926), m.Entries[0].CRC)
}

func TestRateLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data", randomBytes(18*MinReadSize, 4))

	// The burst is one second of tokens (64KB); the last 8KB wait for refill.
	s, err := New(&Options{ReadSize: MinReadSize, RateLimit: 64 * 1024})
	require.NoError(t, err)

	start := time.Now()
	_, err = s.Sum(context.Background(), []string{path})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestSumCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data", []byte("Hello"))

	s, err := New(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Sum(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Verify(ctx, &domain.Manifest{Entries: []domain.ManifestEntry{{Path: path}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		opts  *Options
		field string
	}{
		{"read size", &Options{ReadSize: 10}, "read_size"},
		{"concurrency", &Options{Concurrency: -1}, "concurrency"},
		{"rate", &Options{RateLimit: -5}, "rate_limit"},
		{"engine", &Options{Checksum: &domain.ChecksumOptions{Engine: "md5"}}, "engine"},
		{"codec", &Options{Compression: &domain.CompressionOptions{Codec: "xz"}}, "codec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			ve := scanerr.AsValidationError(err)
			require.NotNil(t, ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCorruptBlocks(t *testing.T) {
	assert.True(t, corruptBlocks([]uint32{1, 2}, []uint32{1, 2}).IsEmpty())
	assert.Equal(t, []uint32{1}, corruptBlocks([]uint32{1, 2}, []uint32{1, 3}).ToArray())
	assert.Equal(t, []uint32{2, 3}, corruptBlocks([]uint32{1, 2}, []uint32{1, 2, 3, 4}).ToArray())
	assert.Equal(t, []uint32{0, 1}, corruptBlocks([]uint32{1, 2}, nil).ToArray())
}
