package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/buildlens/internal/providers"
)

// Default values applied when fields are absent.
const (
	DefaultFormat      = "text"
	DefaultConcurrency = 4
)

// ValidFormats lists the supported report formats.
var ValidFormats = []string{"text", "json", "prom"}

// Config holds the analyzer settings.
type Config struct {
	// Format selects the report format: text | json | prom.
	Format string `yaml:"format" json:"format"`

	// ShowEmpty includes facts that declared themselves empty in text output.
	ShowEmpty bool `yaml:"show_empty" json:"show_empty"`

	// UsedOnly restricts the report to facts that were explicitly requested.
	UsedOnly bool `yaml:"used_only" json:"used_only"`

	// Concurrency bounds how many facts are requested in parallel.
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// DisabledProviders names providers that are not registered.
	DisabledProviders []string `yaml:"disabled_providers" json:"disabled_providers"`

	// CriticalPath tunes the critical path report.
	CriticalPath CriticalPathConfig `yaml:"critical_path" json:"critical_path"`
}

// CriticalPathConfig tunes the critical path report.
type CriticalPathConfig struct {
	// MaxEntries caps the listed components. Zero lists all.
	MaxEntries int `yaml:"max_entries" json:"max_entries"`
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	return &Config{
		Format:      DefaultFormat,
		Concurrency: DefaultConcurrency,
	}
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path yields the defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse yaml: %w", err)
			}
		case ".cue":
			if err := decodeCUE(path, data, cfg); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("config: unsupported file type %q (want .yaml, .yml or .cue)", filepath.Ext(path))
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func decodeCUE(path string, data []byte, cfg *Config) error {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return fmt.Errorf("config: compile cue: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("config: cue value not concrete: %w", err)
	}
	if err := v.Decode(cfg); err != nil {
		return fmt.Errorf("config: decode cue: %w", err)
	}
	return nil
}

// applyEnv overrides fields from BUILDLENS_* variables.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("BUILDLENS_FORMAT"); ok {
		cfg.Format = v
	}
	if err := envBool("BUILDLENS_SHOW_EMPTY", &cfg.ShowEmpty); err != nil {
		return err
	}
	if err := envBool("BUILDLENS_USED_ONLY", &cfg.UsedOnly); err != nil {
		return err
	}
	if err := envInt("BUILDLENS_CONCURRENCY", &cfg.Concurrency); err != nil {
		return err
	}
	if err := envInt("BUILDLENS_CRITICAL_PATH_MAX_ENTRIES", &cfg.CriticalPath.MaxEntries); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("BUILDLENS_DISABLED_PROVIDERS"); ok {
		cfg.DisabledProviders = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.DisabledProviders = append(cfg.DisabledProviders, name)
			}
		}
	}
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate checks field values and provider names.
func (c *Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.CriticalPath.MaxEntries < 0 {
		return fmt.Errorf("critical_path.max_entries must not be negative")
	}
	known := providers.Names()
	for _, name := range c.DisabledProviders {
		if !slices.Contains(known, name) {
			return fmt.Errorf("disabled_providers: unknown provider %q", name)
		}
	}
	return nil
}

// ProviderOptions converts the config into provider options.
func (c *Config) ProviderOptions() providers.Options {
	return providers.Options{CriticalPathMaxEntries: c.CriticalPath.MaxEntries}
}
