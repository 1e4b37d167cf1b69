// Package config holds the typed settings of bench-report, decoded from the
// viper instance that merges the config file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/spf13/viper"
)

// Default file locations.
const (
	DefaultTestsInput       = "test_results.xml"
	DefaultBenchmarksInput  = "benchmark_results.json"
	DefaultTestsOutput      = "gtest_processed.csv"
	DefaultBenchmarksOutput = "benchmark_processed.csv"
	DefaultDBPath           = "data/bench-report.db"
	DefaultUploadPrefix     = "bench-report"
	DefaultRegion           = "us-east-1"
)

// Configuration validation errors.
var (
	ErrNothingToConvert = errors.New("at least one of gtest.path or gbench.path is required")
	ErrMissingOutput    = errors.New("output path is required")
	ErrSameOutput       = errors.New("gtest.report_path and gbench.report_path must differ")
	ErrMissingBucket    = errors.New("upload.s3.bucket is required when upload is enabled")
	ErrPartialKeys      = errors.New("upload.s3.access_key_id and upload.s3.secret_access_key must be set together")
)

// Config is the root configuration.
type Config struct {
	GTest  GTestConfig  `mapstructure:"gtest"`
	GBench GBenchConfig `mapstructure:"gbench"`
	Chart  ChartConfig  `mapstructure:"chart"`
	DB     string       `mapstructure:"db"`
	Upload UploadConfig `mapstructure:"upload"`
}

// GTestConfig locates the unit-test report and its CSV.
type GTestConfig struct {
	Path       string `mapstructure:"path"`
	ReportPath string `mapstructure:"report_path"`
}

// GBenchConfig locates the benchmark report and its CSV.
type GBenchConfig struct {
	Path       string `mapstructure:"path"`
	ReportPath string `mapstructure:"report_path"`
	TimeUnit   string `mapstructure:"time_unit"`
}

// ChartConfig controls HTML chart generation. An empty Dir disables it.
type ChartConfig struct {
	Dir        string `mapstructure:"dir"`
	AssetsHost string `mapstructure:"assets_host"`
}

// UploadConfig controls publishing of generated files.
type UploadConfig struct {
	Enabled bool           `mapstructure:"enabled"`
	S3      S3UploadConfig `mapstructure:"s3"`
}

// S3UploadConfig configures the S3-compatible bucket outputs are pushed to.
type S3UploadConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Region          string `mapstructure:"region"`
	EndpointURL     string `mapstructure:"endpoint_url"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	ForcePathStyle  bool   `mapstructure:"force_path_style"`
	StorageClass    string `mapstructure:"storage_class"`
}

// EnvPrefix namespaces environment variables, e.g. BENCH_REPORT_GBENCH_TIME_UNIT.
const EnvPrefix = "BENCH_REPORT"

// EnvKeyReplacer maps nested and dashed keys onto environment variable names.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_", "-", "_")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("gtest.report_path", DefaultTestsOutput)
	v.SetDefault("gbench.report_path", DefaultBenchmarksOutput)
	v.SetDefault("gbench.time_unit", string(model.DefaultTimeUnit))
	v.SetDefault("upload.s3.prefix", DefaultUploadPrefix)
	v.SetDefault("upload.s3.region", DefaultRegion)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// TimeUnit returns the validated benchmark time unit.
func (c *Config) TimeUnit() (model.TimeUnit, error) {
	if c.GBench.TimeUnit == "" {
		return model.DefaultTimeUnit, nil
	}
	return model.ParseTimeUnit(c.GBench.TimeUnit)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.GTest.Path == "" && c.GBench.Path == "" {
		return ErrNothingToConvert
	}

	if c.GTest.Path != "" && c.GTest.ReportPath == "" {
		return fmt.Errorf("%w: gtest.report_path", ErrMissingOutput)
	}

	if c.GBench.Path != "" && c.GBench.ReportPath == "" {
		return fmt.Errorf("%w: gbench.report_path", ErrMissingOutput)
	}

	if c.GTest.Path != "" && c.GBench.Path != "" &&
		filepath.Clean(c.GTest.ReportPath) == filepath.Clean(c.GBench.ReportPath) {
		return ErrSameOutput
	}

	if _, err := c.TimeUnit(); err != nil {
		return fmt.Errorf("gbench.time_unit: %w", err)
	}

	if c.Upload.Enabled {
		return c.Upload.S3.Validate()
	}

	return nil
}

// Validate validates the S3 settings.
func (s *S3UploadConfig) Validate() error {
	if s.Bucket == "" {
		return ErrMissingBucket
	}

	if (s.AccessKeyID == "") != (s.SecretAccessKey == "") {
		return ErrPartialKeys
	}

	return nil
}
