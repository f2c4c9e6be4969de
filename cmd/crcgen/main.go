// Command crcgen writes the CRC-32 (IEEE) fold tables as Go source, for
// embedding them in code that cannot build them at init time.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"

	"github.com/iamNilotpal/crcsum/pkg/crc32"
)

var (
	pkg    = flag.String("pkg", "crc32", "package name of the generated file")
	output = flag.String("o", "", "output file (default: stdout)")
)

func main() {
	flag.Parse()

	if err := writeOutput(*output, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "crcgen: %v\n", err)
		os.Exit(1)
	}
}

// writeOutput generates into path, or stdout when path is empty. A failed
// close is reported like a failed write.
func writeOutput(path, pkg string) (err error) {
	if path == "" {
		return generate(os.Stdout, pkg)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return generate(f, pkg)
}

// generate renders the tables and gofmts them before writing.
func generate(w io.Writer, pkg string) error {
	var buf bytes.Buffer
	if err := crc32.WriteTables(&buf, pkg, crc32.MakeTables()); err != nil {
		return err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format generated source: %w", err)
	}

	_, err = w.Write(src)
	return err
}
