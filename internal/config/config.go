// Package config loads CLI settings from flags and METCOLOUR_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/anatolykoptev/go-metcolour"
)

// EnvPrefix is prepended to every environment variable, e.g. METCOLOUR_LIMIT.
const EnvPrefix = "METCOLOUR"

// Keys shared by flags and environment variables.
const (
	KeyCatalogURL  = "catalog-url"
	KeyDepartment  = "department"
	KeyLimit       = "limit"
	KeyConcurrency = "concurrency"
	KeyPaletteSize = "palette-size"
	KeyTimeout     = "timeout"
	KeyOutputDir   = "output-dir"
	KeyDedup       = "dedup"
	KeyRights      = "rights"
	KeyUserAgent   = "user-agent"
)

// Config is the resolved CLI configuration.
type Config struct {
	CatalogURL  string
	Department  int
	Limit       int
	Concurrency int
	PaletteSize int
	Timeout     time.Duration
	OutputDir   string
	Dedup       bool
	Rights      bool
	UserAgent   string
}

// RegisterFlags adds every configuration flag to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyCatalogURL, metcolour.DefaultCatalogURL, "collection API base URL")
	fs.Int(KeyDepartment, 0, "catalog department id")
	fs.Int(KeyLimit, 0, "process at most this many objects (0 = all)")
	fs.Int(KeyConcurrency, 1, "images processed in parallel")
	fs.Int(KeyPaletteSize, metcolour.DefaultPaletteSize, "palette samples classified per image")
	fs.Duration(KeyTimeout, 10*time.Second, "per-request timeout")
	fs.String(KeyOutputDir, "results", "directory for images.json")
	fs.Bool(KeyDedup, false, "skip perceptually duplicate images")
	fs.Bool(KeyRights, false, "include rights metadata from image files")
	fs.String(KeyUserAgent, metcolour.DefaultUserAgent, "User-Agent header")
}

// Load resolves configuration: explicitly set flags win over environment
// variables, which win over flag defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	cfg := &Config{
		CatalogURL:  v.GetString(KeyCatalogURL),
		Department:  v.GetInt(KeyDepartment),
		Limit:       v.GetInt(KeyLimit),
		Concurrency: v.GetInt(KeyConcurrency),
		PaletteSize: v.GetInt(KeyPaletteSize),
		Timeout:     v.GetDuration(KeyTimeout),
		OutputDir:   v.GetString(KeyOutputDir),
		Dedup:       v.GetBool(KeyDedup),
		Rights:      v.GetBool(KeyRights),
		UserAgent:   v.GetString(KeyUserAgent),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Department is checked by the commands that need it.
func (c *Config) Validate() error {
	if c.CatalogURL == "" {
		return fmt.Errorf("%s cannot be empty", KeyCatalogURL)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeyLimit, c.Limit)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", KeyConcurrency, c.Concurrency)
	}
	if c.PaletteSize < 1 || c.PaletteSize > 256 {
		return fmt.Errorf("%s must be between 1 and 256, got %d", KeyPaletteSize, c.PaletteSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Timeout)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%s cannot be empty", KeyOutputDir)
	}
	return nil
}

// Library converts the CLI settings into a metcolour.Config.
func (c *Config) Library() *metcolour.Config {
	return &metcolour.Config{
		CatalogURL:    c.CatalogURL,
		UserAgent:     c.UserAgent,
		Timeout:       c.Timeout,
		PaletteSize:   c.PaletteSize,
		ExtractRights: c.Rights,
	}
}

// BatchOpts returns the batch options implied by the settings.
func (c *Config) BatchOpts() metcolour.BatchOpts {
	return metcolour.BatchOpts{
		Limit:       c.Limit,
		Concurrency: c.Concurrency,
		Dedup:       c.Dedup,
	}
}
