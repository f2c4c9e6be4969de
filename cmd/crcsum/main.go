// Command crcsum computes CRC-32 (IEEE) manifests for files, directories,
// stdin and S3 objects, and verifies targets against a saved manifest.
//
//	crcsum [flags] [target ...]          print or save a manifest
//	crcsum [flags] -c manifest           verify the targets listed in manifest
//
// A target is a path, a directory (walked recursively), "-" for stdin, or an
// s3://bucket/key URI. With no targets stdin is read.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iamNilotpal/crcsum/config"
	"github.com/iamNilotpal/crcsum/internal/adapters/source"
	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/iamNilotpal/crcsum/internal/core/ports"
	"github.com/iamNilotpal/crcsum/internal/core/services/scanner"
	"github.com/iamNilotpal/crcsum/pkg/errors"
	"github.com/iamNilotpal/crcsum/pkg/fs"
	"github.com/iamNilotpal/crcsum/pkg/logger"
	"go.uber.org/zap"
)

const (
	exitOK       = 0
	exitMismatch = 1 // a target failed or did not match
	exitUsage    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	config   string
	check    string
	output   string
	json     bool
	engine   string
	codec    string
	block    uint
	readSize int
	jobs     int
	rate     int64
	exclude  string
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (*flags, *flag.FlagSet, error) {
	f := &flags{}
	set := flag.NewFlagSet("crcsum", flag.ContinueOnError)
	set.SetOutput(stderr)

	set.StringVar(&f.config, "config", "", "YAML config file")
	set.StringVar(&f.check, "c", "", "verify targets against this manifest")
	set.StringVar(&f.output, "o", "", "write the manifest to this file (.crcm or .bin for binary)")
	set.BoolVar(&f.json, "json", false, "print JSON instead of text")
	set.StringVar(&f.engine, "engine", "", "checksum engine: bytewise or bulk")
	set.StringVar(&f.codec, "d", "", "decode targets first: none, auto, zstd, gzip, snappy, lz4")
	set.UintVar(&f.block, "block", 0, "bytes covered by each block checksum, 0 disables")
	set.IntVar(&f.readSize, "read", 0, "bytes per read")
	set.IntVar(&f.jobs, "j", 0, "targets read at once")
	set.Int64Var(&f.rate, "rate", 0, "read throughput cap in bytes per second, 0 is unlimited")
	set.StringVar(&f.exclude, "exclude", "", "comma separated directory names skipped when walking directories")
	set.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")

	set.Usage = func() {
		fmt.Fprintf(stderr, "Usage: crcsum [flags] [target ...]\n       crcsum [flags] -c manifest\n\n")
		set.PrintDefaults()
	}

	if err := set.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, set, nil
}

// loadConfig starts from the config file, or the defaults, and applies the
// flags that were given explicitly on top.
func loadConfig(f *flags, set *flag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = config.LoadConfig(f.config); err != nil {
			return nil, err
		}
	}

	if f.block > math.MaxUint32 {
		return nil, errors.NewValidationError(
			"block", f.block, fmt.Errorf("must not exceed %d bytes", uint32(math.MaxUint32)),
		)
	}

	set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "engine":
			cfg.Engine = f.engine
		case "d":
			cfg.Codec = f.codec
		case "block":
			cfg.BlockSize = uint32(f.block)
		case "read":
			cfg.ReadSize = f.readSize
		case "j":
			cfg.Concurrency = f.jobs
		case "rate":
			cfg.RateLimit = f.rate
		case "exclude":
			cfg.Exclude = splitList(f.exclude)
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// newSource routes plain paths and stdin to the local file source and s3://
// URIs to MinIO when an endpoint is configured, or to AWS otherwise. Object
// storage clients are only built once an s3:// target is opened.
func newSource(cfg *config.Config, stdin io.Reader) ports.SourcePort {
	s3cfg := cfg.S3
	objects := source.NewLazy("s3", func(ctx context.Context) (ports.SourcePort, error) {
		if s3cfg.Endpoint != "" {
			m, err := source.NewMinioFromOptions(source.MinioOptions{
				Endpoint:  s3cfg.Endpoint,
				AccessKey: s3cfg.AccessKey,
				SecretKey: s3cfg.SecretKey,
				Region:    s3cfg.Region,
				Secure:    s3cfg.Secure,
			})
			if err != nil {
				return nil, err
			}
			return m, nil
		}

		s, err := source.NewS3FromEnv(ctx, s3cfg.Region)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	return source.NewRouter(source.NewFile(stdin), objects)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, set, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(f, set)
	if err != nil {
		if ve := errors.AsValidationError(err); ve != nil {
			fmt.Fprintf(stderr, "crcsum: invalid %s %v: %v\n", ve.Field, ve.Value, ve.Err)
		} else {
			fmt.Fprintf(stderr, "crcsum: %v\n", err)
		}
		return exitUsage
	}

	log := logger.NewWithLevel("crcsum", cfg.LogLevel)
	defer log.Sync()

	s, err := scanner.New(&scanner.Options{
		Checksum:    &domain.ChecksumOptions{Engine: domain.Engine(cfg.Engine)},
		Compression: &domain.CompressionOptions{Codec: domain.Codec(cfg.Codec)},
		BlockSize:   cfg.BlockSize,
		ReadSize:    cfg.ReadSize,
		Concurrency: cfg.Concurrency,
		RateLimit:   cfg.RateLimit,
		Source:      newSource(cfg, stdin),
		Logger:      log,
	})
	if err != nil {
		if ve := errors.AsValidationError(err); ve != nil {
			log.Errorw("invalid options", "field", ve.Field, "value", ve.Value, "error", ve.Err)
		}
		fmt.Fprintf(stderr, "crcsum: %v\n", err)
		return exitUsage
	}

	app := &app{
		scanner: s,
		fs:      fs.NewLocalFileSystem(),
		cfg:     cfg,
		flags:   f,
		stdout:  stdout,
		stderr:  stderr,
		log:     log,
	}

	if f.check != "" {
		if set.NArg() > 0 {
			fmt.Fprintln(stderr, "crcsum: targets cannot be combined with -c")
			return exitUsage
		}
		return app.verify(ctx)
	}
	return app.sum(ctx, set.Args())
}

type app struct {
	scanner *scanner.Scanner
	fs      ports.FileSystemPort
	cfg     *config.Config
	flags   *flags
	stdout  io.Writer
	stderr  io.Writer
	log     *zap.SugaredLogger
}
