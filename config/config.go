package config

import (
	"fmt"
	"os"

	"github.com/iamNilotpal/crcsum/internal/adapters/checksum"
	"github.com/iamNilotpal/crcsum/internal/adapters/compression"
	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/iamNilotpal/crcsum/internal/core/services/scanner"
	validation "github.com/iamNilotpal/crcsum/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Engine      string   `yaml:"engine"`      // bytewise or bulk
	Codec       string   `yaml:"codec"`       // none, auto, zstd, gzip, snappy, lz4
	BlockSize   uint32   `yaml:"block_size"`  // Bytes per block checksum, 0 disables
	ReadSize    int      `yaml:"read_size"`   // Bytes per read
	Concurrency int      `yaml:"concurrency"` // Targets read at once, 0 for the default
	RateLimit   int64    `yaml:"rate_limit"`  // Bytes per second, 0 is unlimited
	Exclude     []string `yaml:"exclude"`     // Directory names skipped when walking directories
	LogLevel    string   `yaml:"log_level"`   // debug, info, warn, error
	S3          S3Config `yaml:"s3"`
}

// Holds object storage settings. With Endpoint set, objects are read through
// the MinIO client; otherwise through the AWS SDK's default credential chain.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"` // host:port of an S3-compatible store
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"` // Use TLS for Endpoint
}

// Returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		Engine:      string(checksum.Bulk),
		Codec:       string(compression.None),
		BlockSize:   4 * 1024 * 1024, // 4MB
		ReadSize:    256 * 1024,      // 256KB
		Concurrency: 4,
		Exclude:     []string{".git"},
		LogLevel:    "info",
		S3:          S3Config{Secure: true},
	}
}

// Loads configuration from a YAML file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks every field and returns the first *errors.ValidationError found.
func (c *Config) Validate() error {
	if err := checksum.Validate(&domain.ChecksumOptions{Engine: domain.Engine(c.Engine)}); err != nil {
		return err
	}

	if err := compression.Validate(&domain.CompressionOptions{Codec: domain.Codec(c.Codec)}); err != nil {
		return err
	}

	if c.ReadSize < 0 {
		return validation.NewValidationError("read_size", c.ReadSize, fmt.Errorf("read_size must not be negative"))
	}

	// Zero selects the scanner's default, as it does for read_size.
	if c.Concurrency < 0 || c.Concurrency > scanner.MaxConcurrency {
		return validation.NewValidationError(
			"concurrency", c.Concurrency, fmt.Errorf("concurrency must be between 0 and %d", scanner.MaxConcurrency),
		)
	}

	if c.RateLimit < 0 {
		return validation.NewValidationError("rate_limit", c.RateLimit, fmt.Errorf("rate_limit must not be negative"))
	}

	if c.S3.Endpoint != "" && (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
		return validation.NewValidationError(
			"s3.access_key", c.S3.AccessKey, fmt.Errorf("access_key and secret_key must be set together"),
		)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return validation.NewValidationError("log_level", c.LogLevel, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	return nil
}
