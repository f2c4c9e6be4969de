package crc32

import (
	stdcrc "hash/crc32"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDigest checks that Digest behaves exactly like the standard library
// hash across writes, Sum and Reset.
func TestDigest(t *testing.T) {
	for name, d := range map[string]*Digest{"bytewise": New(), "bulk": NewBulk()} {
		t.Run(name, func(t *testing.T) {
			std := stdcrc.NewIEEE()

			assert.Equal(t, std.Size(), d.Size())
			assert.Equal(t, std.BlockSize(), d.BlockSize())

			for _, s := range []string{"test", "", "hello", strings.Repeat("x", 129)} {
				_, err := io.WriteString(std, s)
				require.NoError(t, err)
				n, err := io.WriteString(d, s)
				require.NoError(t, err)
				require.Equal(t, len(s), n)

				assert.Equal(t, std.Sum32(), d.Sum32())
				assert.Equal(t, std.Sum([]byte{1, 2}), d.Sum([]byte{1, 2}))
			}

			std.Reset()
			d.Reset()
			assert.Equal(t, std.Sum32(), d.Sum32())
		})
	}
}

func TestDigestSeeded(t *testing.T) {
	seed := Checksum(0, []byte("Hello, "))
	d := NewSeeded(seed, nil)

	_, err := d.Write([]byte("world"))
	require.NoError(t, err)
	assert.Equal(t, Checksum(0, []byte("Hello, world")), d.Sum32())

	d.Reset()
	assert.Equal(t, seed, d.Sum32())
}
