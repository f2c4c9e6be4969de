package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
)

const (
	textHeader    = "# crcsum manifest"
	blockPrefix   = "+ "
	blocksPerLine = 8
)

// Text is a line-oriented format:
//
//	# crcsum manifest
//	# id: 1b4e28ba-2fa1-11d2-883f-0016d3cca427
//	# created: 2024-05-01T10:00:00Z
//	# engine: bulk
//	# codec: none
//	# block: 1048576
//	8bb98613  4  path/to/file
//	+ 8bb98613
//
// Each entry line is the CRC in hex, the size and the path, separated by two
// spaces. Lines starting with "+ " carry block CRCs for the entry above them.
type Text struct{}

func (Text) Encode(w io.Writer, m *domain.Manifest) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, textHeader)
	fmt.Fprintf(bw, "# id: %s\n", m.ID)
	fmt.Fprintf(bw, "# created: %s\n", m.CreatedAt.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(bw, "# engine: %s\n", m.Engine)
	fmt.Fprintf(bw, "# codec: %s\n", m.Codec)
	fmt.Fprintf(bw, "# block: %d\n", m.BlockSize)

	for _, e := range m.Entries {
		if strings.ContainsAny(e.Path, "\r\n") {
			return fmt.Errorf("path %q contains a line break", e.Path)
		}
		fmt.Fprintf(bw, "%08x  %d  %s\n", e.CRC, e.Size, e.Path)

		for i := 0; i < len(e.Blocks); i += blocksPerLine {
			bw.WriteString(blockPrefix)
			for k := i; k < min(i+blocksPerLine, len(e.Blocks)); k++ {
				if k > i {
					bw.WriteByte(' ')
				}
				fmt.Fprintf(bw, "%08x", e.Blocks[k])
			}
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

func (Text) Decode(r io.Reader) (*domain.Manifest, error) {
	m := &domain.Manifest{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; sc.Scan(); n++ {
		line := sc.Text()

		switch {
		case line == "":
		case strings.HasPrefix(line, "#"):
			if err := parseHeader(m, line); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupt, n, err)
			}
		case strings.HasPrefix(line, blockPrefix):
			if len(m.Entries) == 0 {
				return nil, fmt.Errorf("%w: line %d: block checksums before any entry", ErrCorrupt, n)
			}
			last := &m.Entries[len(m.Entries)-1]
			for _, field := range strings.Fields(line[len(blockPrefix):]) {
				crc, err := parseCRC(field)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupt, n, err)
				}
				last.Blocks = append(last.Blocks, crc)
			}
		default:
			e, err := parseEntry(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupt, n, err)
			}
			m.Entries = append(m.Entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

func parseHeader(m *domain.Manifest, line string) error {
	key, value, found := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "#")), ":")
	if !found {
		return nil
	}
	value = strings.TrimSpace(value)

	switch strings.TrimSpace(key) {
	case "id":
		m.ID = value
	case "created":
		t, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return err
		}
		m.CreatedAt = t
	case "engine":
		m.Engine = domain.Engine(value)
	case "codec":
		m.Codec = domain.Codec(value)
	case "block":
		size, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		m.BlockSize = uint32(size)
	}
	return nil
}

func parseEntry(line string) (domain.ManifestEntry, error) {
	parts := strings.SplitN(line, "  ", 3)
	if len(parts) != 3 || parts[2] == "" {
		return domain.ManifestEntry{}, fmt.Errorf("want \"crc  size  path\", got %q", line)
	}

	crc, err := parseCRC(parts[0])
	if err != nil {
		return domain.ManifestEntry{}, err
	}
	size, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return domain.ManifestEntry{}, err
	}

	return domain.ManifestEntry{Path: parts[2], Size: size, CRC: crc}, nil
}

func parseCRC(s string) (uint32, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("checksum %q is not 8 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
