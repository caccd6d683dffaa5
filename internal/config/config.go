package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-remediation/internal/logger"
)

// Config holds the settings shared by the remediation binaries.
type Config struct {
	// LogLevel is the minimum level written to the log sink (LOG_LEVEL).
	LogLevel string `yaml:"log_level"`
	// LogEncoding selects console or json output (LOG_ENCODING).
	LogEncoding string `yaml:"log_encoding"`
	// AbortOnError stops a batch at the first failed envelope instead of
	// processing the rest (REMEDIATION_ABORT_ON_ERROR).
	AbortOnError bool `yaml:"abort_on_error"`
	// ServerAddress is the gRPC address served by remediation-server and dialed by remediation-ctl.
	ServerAddress string `yaml:"server_addr"`
	// MetricsAddress is where remediation-server exposes Prometheus metrics. Empty disables it.
	MetricsAddress string `yaml:"metrics_addr"`
	// Timeout bounds RPC calls and log queries.
	Timeout time.Duration `yaml:"timeout"`
	// AWSRegion overrides the region resolved by the AWS SDK (AWS_REGION).
	AWSRegion string `yaml:"aws_region"`
	// LogGroup is the default CloudWatch log group for analysis (REMEDIATION_LOG_GROUP).
	LogGroup string `yaml:"log_group"`
	// LookbackHours is the default analysis window.
	LookbackHours int `yaml:"lookback_hours"`
}

const (
	// DefaultConfigFilename is the default filename for remediation-server settings.
	DefaultConfigFilename = "remediation-settings.yaml"

	// DefaultLogLevel matches the level Lambda functions start with.
	DefaultLogLevel = "INFO"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultLookbackHours is the default log analysis window.
	DefaultLookbackHours = 1

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Environment variables that override file settings.
const (
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogEncoding  = "LOG_ENCODING"
	EnvAWSRegion    = "AWS_REGION"
	EnvAbortOnError = "REMEDIATION_ABORT_ON_ERROR"
	EnvLogGroup     = "REMEDIATION_LOG_GROUP"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownLogLevel is returned for level names the logger cannot parse.
	errUnknownLogLevel = errors.New("unknown log level")
	// errUnknownLogEncoding is returned for encodings other than console and json.
	errUnknownLogEncoding = errors.New("unknown log encoding")
	// errNegativeLookback is returned for a negative analysis window.
	errNegativeLookback = errors.New("lookback hours must not be negative")
)

// Load reads configuration from the provided path, applies environment overrides
// and validates the result. An empty path skips the file and starts from defaults,
// which is how the Lambda binary is configured.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	var cfg Config

	if path != "" {
		contents, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}

		if err = yaml.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills defaults for omitted values.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	switch strings.ToLower(settings.LogEncoding) {
	case "":
		settings.LogEncoding = logger.EncodingConsole
	case logger.EncodingConsole, logger.EncodingJSON:
	default:
		return fmt.Errorf("%w: %q", errUnknownLogEncoding, settings.LogEncoding)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	switch {
	case settings.LookbackHours < 0:
		return errNegativeLookback
	case settings.LookbackHours == 0:
		settings.LookbackHours = DefaultLookbackHours
	}

	if settings.ServerAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
			return fmt.Errorf("invalid server socket: %w", err)
		}
	}

	if settings.MetricsAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics socket: %w", err)
		}
	}

	return nil
}

// applyEnv overrides file settings with environment variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}

	if v, ok := lookup(EnvLogEncoding); ok && v != "" {
		cfg.LogEncoding = v
	}

	if v, ok := lookup(EnvAWSRegion); ok && v != "" {
		cfg.AWSRegion = v
	}

	if v, ok := lookup(EnvLogGroup); ok && v != "" {
		cfg.LogGroup = v
	}

	if v, ok := lookup(EnvAbortOnError); ok && v != "" {
		abort, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvAbortOnError, err)
		}

		cfg.AbortOnError = abort
	}

	return nil
}
