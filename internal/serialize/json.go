// Package serialize renders manifests and verification reports as JSON.
package serialize

import (
	"encoding/json"
	"fmt"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
)

// ReportView is the JSON form of a domain.Report. CRCs are rendered as
// 8-digit hex strings, the way the text manifest prints them.
type ReportView struct {
	Path          string   `json:"path"`
	OK            bool     `json:"ok"`
	Size          uint64   `json:"size"`
	CRC           string   `json:"crc,omitempty"`
	Expected      string   `json:"expected"`
	CorruptBlocks []uint32 `json:"corrupt_blocks,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// EntryView is the JSON form of a domain.ManifestEntry.
type EntryView struct {
	Path   string   `json:"path"`
	Size   uint64   `json:"size"`
	CRC    string   `json:"crc"`
	Blocks []string `json:"blocks,omitempty"`
}

// ManifestView is the JSON form of a domain.Manifest.
type ManifestView struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"created_at,omitempty"`
	Engine    string      `json:"engine"`
	Codec     string      `json:"codec,omitempty"`
	BlockSize uint32      `json:"block_size,omitempty"`
	Entries   []EntryView `json:"entries"`
}

func hex32(v uint32) string {
	return fmt.Sprintf("%08x", v)
}

func NewReportView(r domain.Report) ReportView {
	v := ReportView{Path: r.Path, OK: r.OK, Size: r.Size, Expected: hex32(r.Expected)}
	if r.Err == nil || r.Size > 0 || r.CRC != 0 {
		v.CRC = hex32(r.CRC)
	}
	if r.CorruptBlocks != nil && !r.CorruptBlocks.IsEmpty() {
		v.CorruptBlocks = r.CorruptBlocks.ToArray()
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	return v
}

func NewManifestView(m *domain.Manifest) ManifestView {
	v := ManifestView{
		ID:        m.ID,
		Engine:    string(m.Engine),
		Codec:     string(m.Codec),
		BlockSize: m.BlockSize,
		Entries:   make([]EntryView, 0, len(m.Entries)),
	}
	if !m.CreatedAt.IsZero() {
		v.CreatedAt = m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	for _, e := range m.Entries {
		ev := EntryView{Path: e.Path, Size: e.Size, CRC: hex32(e.CRC)}
		for _, b := range e.Blocks {
			ev.Blocks = append(ev.Blocks, hex32(b))
		}
		v.Entries = append(v.Entries, ev)
	}
	return v
}

// MarshalReports renders reports as an indented JSON array.
func MarshalReports(reports []domain.Report) ([]byte, error) {
	views := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, NewReportView(r))
	}
	return MarshalJSON(views)
}

// MarshalManifest renders m as indented JSON.
func MarshalManifest(m *domain.Manifest) ([]byte, error) {
	return MarshalJSON(NewManifestView(m))
}

func MarshalJSON(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func UnMarshalJSON(data []byte, dest any) error {
	return json.Unmarshal(data, dest)
}
