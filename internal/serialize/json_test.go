package serialize

import (
	"errors"
	"testing"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalReports(t *testing.T) {
	reports := []domain.Report{
		{Path: "a", Size: 5, CRC: 0xf7d18982, Expected: 0xf7d18982, OK: true},
		{Path: "b", Size: 9, CRC: 0x1, Expected: 0xcbf43926, CorruptBlocks: roaring.BitmapOf(0, 3), Err: errors.New("mismatch")},
		{Path: "c", Expected: 0x2, Err: errors.New("not found")},
	}

	data, err := MarshalReports(reports)
	require.NoError(t, err)

	var got []ReportView
	require.NoError(t, UnMarshalJSON(data, &got))
	require.Len(t, got, 3)

	assert.Equal(t, ReportView{Path: "a", OK: true, Size: 5, CRC: "f7d18982", Expected: "f7d18982"}, got[0])
	assert.Equal(t, []uint32{0, 3}, got[1].CorruptBlocks)
	assert.Equal(t, "00000001", got[1].CRC)
	assert.Equal(t, "mismatch", got[1].Error)
	assert.Empty(t, got[2].CRC)
	assert.Equal(t, "00000002", got[2].Expected)
}

func TestMarshalManifest(t *testing.T) {
	m := &domain.Manifest{
		ID:        "run-1",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Engine:    "bulk",
		BlockSize: 4,
		Entries:   []domain.ManifestEntry{{Path: "x", Size: 4, CRC: 0x8bb98613, Blocks: []uint32{0x8bb98613}}},
	}

	data, err := MarshalManifest(m)
	require.NoError(t, err)

	var got ManifestView
	require.NoError(t, UnMarshalJSON(data, &got))
	assert.Equal(t, "2024-05-01T12:00:00Z", got.CreatedAt)
	assert.Equal(t, []EntryView{{Path: "x", Size: 4, CRC: "8bb98613", Blocks: []string{"8bb98613"}}}, got.Entries)
	assert.Contains(t, string(data), "\n  \"id\": \"run-1\"")
}
