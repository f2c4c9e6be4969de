package manifest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/iamNilotpal/crcsum/pkg/crc32"
	"google.golang.org/protobuf/encoding/protowire"
)

// Binary layout: magic, then the manifest as protobuf wire fields, then the
// CRC-32 of everything before it, little-endian.
var binaryMagic = []byte("CRCM\x01")

// Manifest fields.
const (
	fieldID        protowire.Number = 1
	fieldCreatedAt protowire.Number = 2 // unix nanoseconds
	fieldEngine    protowire.Number = 3
	fieldCodec     protowire.Number = 4
	fieldBlockSize protowire.Number = 5
	fieldEntry     protowire.Number = 6
)

// Entry fields.
const (
	fieldPath   protowire.Number = 1
	fieldSize   protowire.Number = 2
	fieldCRC    protowire.Number = 3
	fieldBlocks protowire.Number = 4 // packed fixed32
)

// Binary is a compact encoding that detects its own corruption.
type Binary struct{}

func (Binary) Encode(w io.Writer, m *domain.Manifest) error {
	b := append([]byte(nil), binaryMagic...)

	b = protowire.AppendTag(b, fieldID, protowire.BytesType)
	b = protowire.AppendString(b, m.ID)
	if !m.CreatedAt.IsZero() {
		b = protowire.AppendTag(b, fieldCreatedAt, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.CreatedAt.UnixNano()))
	}
	b = protowire.AppendTag(b, fieldEngine, protowire.BytesType)
	b = protowire.AppendString(b, string(m.Engine))
	b = protowire.AppendTag(b, fieldCodec, protowire.BytesType)
	b = protowire.AppendString(b, string(m.Codec))
	b = protowire.AppendTag(b, fieldBlockSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.BlockSize))

	for i := range m.Entries {
		b = protowire.AppendTag(b, fieldEntry, protowire.BytesType)
		b = protowire.AppendBytes(b, appendEntry(nil, &m.Entries[i]))
	}

	b = binary.LittleEndian.AppendUint32(b, crc32.ChecksumBulk(0, b))
	_, err := w.Write(b)
	return err
}

func appendEntry(b []byte, e *domain.ManifestEntry) []byte {
	b = protowire.AppendTag(b, fieldPath, protowire.BytesType)
	b = protowire.AppendString(b, e.Path)
	b = protowire.AppendTag(b, fieldSize, protowire.VarintType)
	b = protowire.AppendVarint(b, e.Size)
	b = protowire.AppendTag(b, fieldCRC, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, e.CRC)

	if len(e.Blocks) > 0 {
		packed := make([]byte, 0, len(e.Blocks)*4)
		for _, crc := range e.Blocks {
			packed = protowire.AppendFixed32(packed, crc)
		}
		b = protowire.AppendTag(b, fieldBlocks, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

func (Binary) Decode(r io.Reader) (*domain.Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) < len(binaryMagic)+crc32.Size || !bytes.HasPrefix(data, binaryMagic) {
		return nil, fmt.Errorf("%w: not a binary manifest", ErrCorrupt)
	}
	body, trailer := data[:len(data)-crc32.Size], data[len(data)-crc32.Size:]
	if got, want := crc32.ChecksumBulk(0, body), binary.LittleEndian.Uint32(trailer); got != want {
		return nil, fmt.Errorf("%w: checksum %08x, want %08x", ErrCorrupt, got, want)
	}

	m := &domain.Manifest{}
	err = consumeFields(body[len(binaryMagic):], func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldID && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.ID = v
			return n, nil
		case num == fieldCreatedAt && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.CreatedAt = time.Unix(0, int64(v)).UTC()
			return n, nil
		case num == fieldEngine && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Engine = domain.Engine(v)
			return n, nil
		case num == fieldCodec && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Codec = domain.Codec(v)
			return n, nil
		case num == fieldBlockSize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.BlockSize = uint32(v)
			return n, nil
		case num == fieldEntry && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			e, err := decodeEntry(v)
			if err != nil {
				return 0, err
			}
			m.Entries = append(m.Entries, e)
			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func decodeEntry(data []byte) (domain.ManifestEntry, error) {
	var e domain.ManifestEntry
	err := consumeFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldPath && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			e.Path = v
			return n, nil
		case num == fieldSize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Size = v
			return n, nil
		case num == fieldCRC && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			e.CRC = v
			return n, nil
		case num == fieldBlocks && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			if len(v)%4 != 0 {
				return 0, fmt.Errorf("%w: block list of %d bytes", ErrCorrupt, len(v))
			}
			for len(v) > 0 {
				crc, m := protowire.ConsumeFixed32(v)
				e.Blocks = append(e.Blocks, crc)
				v = v[m:]
			}
			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
	return e, err
}

// consumeFields walks the fields of one message, handing each value to fn.
// fn returns how many bytes of the value it consumed, negative on a wire error.
func consumeFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}
