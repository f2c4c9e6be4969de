package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iamNilotpal/crcsum/internal/adapters/manifest"
	"github.com/iamNilotpal/crcsum/internal/adapters/source"
	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/iamNilotpal/crcsum/internal/serialize"
	"github.com/iamNilotpal/crcsum/pkg/system"
)

func (a *app) sum(ctx context.Context, args []string) int {
	if len(args) == 0 {
		args = []string{source.StdinTarget}
	}

	targets, err := a.fs.Expand(args, a.cfg.Exclude)
	if err != nil {
		fmt.Fprintf(a.stderr, "crcsum: %v\n", err)
		return exitMismatch
	}

	m, sumErr := a.scanner.Sum(ctx, targets)
	if m == nil {
		fmt.Fprintf(a.stderr, "crcsum: %v\n", sumErr)
		return exitMismatch
	}

	code := exitOK
	if sumErr != nil {
		for _, line := range strings.Split(sumErr.Error(), "\n") {
			fmt.Fprintf(a.stderr, "crcsum: %s\n", line)
		}
		code = exitMismatch
	}

	if a.flags.output != "" {
		// Let the manifest finish writing even if interrupted, so the file is never half written.
		if err := system.RunWithContext(ctx, func(context.Context) error {
			return writeManifest(a.flags.output, m)
		}); err != nil {
			fmt.Fprintf(a.stderr, "crcsum: write manifest: %v\n", err)
			return exitMismatch
		}
		a.log.Infow("manifest written", "path", a.flags.output, "entries", len(m.Entries))
		return code
	}

	if a.flags.json {
		data, err := serialize.MarshalManifest(m)
		if err != nil {
			fmt.Fprintf(a.stderr, "crcsum: %v\n", err)
			return exitMismatch
		}
		fmt.Fprintln(a.stdout, string(data))
		return code
	}

	if err := (manifest.Text{}).Encode(a.stdout, m); err != nil {
		fmt.Fprintf(a.stderr, "crcsum: %v\n", err)
		return exitMismatch
	}
	return code
}

// writeManifest writes to a temporary file beside path and renames it into place.
func writeManifest(path string, m *domain.Manifest) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".crcsum-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := manifest.ForPath(path).Encode(tmp, m); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// CreateTemp makes the file owner-only.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (a *app) verify(ctx context.Context) int {
	path := a.flags.check
	exists, err := a.fs.Exists(path)
	if err != nil || !exists {
		fmt.Fprintf(a.stderr, "crcsum: %s: no such manifest\n", path)
		return exitUsage
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.stderr, "crcsum: %v\n", err)
		return exitUsage
	}
	m, err := manifest.ForPath(path).Decode(file)
	file.Close()
	if err != nil {
		fmt.Fprintf(a.stderr, "crcsum: %s: %v\n", path, err)
		return exitUsage
	}

	reports, err := a.scanner.Verify(ctx, m)
	if err != nil {
		fmt.Fprintf(a.stderr, "crcsum: %v\n", err)
		return exitMismatch
	}

	failed := 0
	for _, r := range reports {
		if !r.OK {
			failed++
		}
	}

	if a.flags.json {
		data, err := serialize.MarshalReports(reports)
		if err != nil {
			fmt.Fprintf(a.stderr, "crcsum: %v\n", err)
			return exitMismatch
		}
		fmt.Fprintln(a.stdout, string(data))
	} else {
		for _, r := range reports {
			printReport(a, r)
		}
	}

	if failed > 0 {
		fmt.Fprintf(a.stderr, "crcsum: WARNING: %d of %d targets did NOT match\n", failed, len(reports))
		return exitMismatch
	}
	return exitOK
}

func printReport(a *app, r domain.Report) {
	if r.OK {
		fmt.Fprintf(a.stdout, "%s: OK\n", r.Path)
		return
	}

	line := r.Path + ": FAILED"
	if r.CorruptBlocks != nil && !r.CorruptBlocks.IsEmpty() {
		line += fmt.Sprintf(" (blocks %v)", r.CorruptBlocks.ToArray())
	}
	fmt.Fprintln(a.stdout, line)
	if r.Err != nil {
		fmt.Fprintf(a.stderr, "crcsum: %v\n", r.Err)
	}
}
