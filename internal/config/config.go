// Package config resolves zmask settings from defaults, an optional YAML
// file and ZMASK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zarlcorp/zmask/internal/batch"
	"github.com/zarlcorp/zmask/internal/identity"
	"github.com/zarlcorp/zmask/internal/mask"
	"gopkg.in/yaml.v3"
)

const envPrefix = "ZMASK_"

// Config holds resolved settings. The engine only ever sees the scalar
// values, never where they came from.
type Config struct {
	Count           int      `yaml:"count"`
	ShiftDays       int      `yaml:"shift_days"`
	Locale          string   `yaml:"locale"`
	Seed            *uint64  `yaml:"seed,omitempty"`
	ReferenceDate   string   `yaml:"reference_date,omitempty"`
	MinAge          int      `yaml:"min_age"`
	MaxAge          int      `yaml:"max_age"`
	UniqueSSN       bool     `yaml:"unique_ssn"`
	MaxAttempts     int      `yaml:"max_attempts"`
	Workers         int      `yaml:"workers"`
	DateLayout      string   `yaml:"date_layout"`
	EmailDomains    []string `yaml:"email_domains,omitempty"`
	Input           string   `yaml:"input"`
	GeneratedOutput string   `yaml:"generated_output"`
	MaskedOutput    string   `yaml:"masked_output"`
	LogLevel        string   `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Count:           100,
		ShiftDays:       mask.DefaultShiftDays,
		Locale:          identity.DefaultLocale,
		MinAge:          18,
		MaxAge:          90,
		MaxAttempts:     batch.DefaultMaxAttempts,
		Workers:         1,
		DateLayout:      identity.DateLayout,
		Input:           filepath.Join("data", "demographics.csv"),
		GeneratedOutput: "demographicsData.csv",
		MaskedOutput:    "demographicsMasked.csv",
		LogLevel:        "info",
	}
}

// Path returns the default config file location.
func Path() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "zmask", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zmask.yaml"
	}
	return filepath.Join(home, ".config", "zmask", "config.yaml")
}

// Load returns the defaults overlaid with the YAML file at path. A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// envVars maps each ZMASK_ suffix to the field it overrides.
var envVars = []struct {
	name string
	set  func(c *Config, v string) error
}{
	{"COUNT", func(c *Config, v string) error { return setInt(&c.Count, "count", v) }},
	{"SHIFT_DAYS", func(c *Config, v string) error {
		n, err := mask.ParseShift(v)
		if err != nil {
			return err
		}
		c.ShiftDays = n
		return nil
	}},
	{"LOCALE", func(c *Config, v string) error { c.Locale = v; return nil }},
	{"SEED", func(c *Config, v string) error {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return &identity.ValidationError{Field: "seed", Value: v, Reason: "not an unsigned integer"}
		}
		c.Seed = &n
		return nil
	}},
	{"REFERENCE_DATE", func(c *Config, v string) error { c.ReferenceDate = v; return nil }},
	{"MIN_AGE", func(c *Config, v string) error { return setInt(&c.MinAge, "minAge", v) }},
	{"MAX_AGE", func(c *Config, v string) error { return setInt(&c.MaxAge, "maxAge", v) }},
	{"UNIQUE_SSN", func(c *Config, v string) error { return setBool(&c.UniqueSSN, "uniqueSSN", v) }},
	{"MAX_ATTEMPTS", func(c *Config, v string) error { return setInt(&c.MaxAttempts, "maxAttempts", v) }},
	{"WORKERS", func(c *Config, v string) error { return setInt(&c.Workers, "workers", v) }},
	{"DATE_LAYOUT", func(c *Config, v string) error { c.DateLayout = v; return nil }},
	{"EMAIL_DOMAINS", func(c *Config, v string) error { c.EmailDomains = splitList(v); return nil }},
	{"INPUT", func(c *Config, v string) error { c.Input = v; return nil }},
	{"GENERATED_OUTPUT", func(c *Config, v string) error { c.GeneratedOutput = v; return nil }},
	{"MASKED_OUTPUT", func(c *Config, v string) error { c.MaskedOutput = v; return nil }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.LogLevel = v; return nil }},
}

// ApplyEnv overrides fields from ZMASK_* variables found via lookup
// (os.LookupEnv in production). Every malformed value is reported.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	for _, ev := range envVars {
		v, ok := lookup(envPrefix + ev.name)
		if !ok {
			continue
		}
		if err := ev.set(c, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate reports every setting the engine cannot honor.
func (c Config) Validate() error {
	var errs []error
	bad := func(field string, value any, reason string) {
		errs = append(errs, &identity.ValidationError{Field: field, Value: fmt.Sprint(value), Reason: reason})
	}

	if c.Count < 0 {
		bad("count", c.Count, "must not be negative")
	}
	if err := mask.ValidateShift(c.ShiftDays); err != nil {
		errs = append(errs, err)
	}
	if _, err := identity.ParseLocale(c.Locale); err != nil {
		errs = append(errs, err)
	}
	if c.ReferenceDate != "" {
		if _, err := identity.ParseDate(c.ReferenceDate); err != nil {
			bad("referenceDate", c.ReferenceDate, "not a calendar date")
		}
	}
	if c.MinAge < 0 {
		bad("minAge", c.MinAge, "must not be negative")
	}
	if c.MaxAge < c.MinAge {
		bad("maxAge", c.MaxAge, "must not be below minAge")
	}
	if c.MaxAge > 150 {
		bad("maxAge", c.MaxAge, "implausibly old")
	}
	if c.MaxAttempts < 1 {
		bad("maxAttempts", c.MaxAttempts, "must be at least 1")
	}
	if c.Workers < 1 {
		bad("workers", c.Workers, "must be at least 1")
	}
	if !layoutRoundTrips(c.DateLayout) {
		bad("dateLayout", c.DateLayout, "does not round-trip a calendar date")
	}
	for _, d := range c.EmailDomains {
		if d == "" || strings.ContainsAny(d, "@ ") || !strings.Contains(d, ".") {
			bad("emailDomains", d, "not a domain name")
		}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		bad("logLevel", c.LogLevel, "want debug, info, warn or error")
	}

	return errors.Join(errs...)
}

// Level returns the configured log level, defaulting to info.
func (c Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// GeneratorOptions translates the settings into identity options.
func (c Config) GeneratorOptions() ([]identity.Option, error) {
	loc, err := identity.ParseLocale(c.Locale)
	if err != nil {
		return nil, err
	}
	opts := []identity.Option{
		identity.WithLocale(loc),
		identity.WithAgeRange(c.MinAge, c.MaxAge),
	}
	if len(c.EmailDomains) > 0 {
		opts = append(opts, identity.WithEmailDomains(c.EmailDomains...))
	}
	if c.ReferenceDate != "" {
		ref, err := identity.ParseDate(c.ReferenceDate)
		if err != nil {
			return nil, &identity.ValidationError{Field: "referenceDate", Value: c.ReferenceDate, Reason: "not a calendar date"}
		}
		opts = append(opts, identity.WithClock(func() time.Time { return ref }))
	}
	return opts, nil
}

// BatchOptions translates the settings into batch options. Masking reads
// birth dates in DateLayout first, so generated files mask cleanly.
func (c Config) BatchOptions() []batch.Option {
	return []batch.Option{
		batch.WithMaxAttempts(c.MaxAttempts),
		batch.WithUniqueSSN(c.UniqueSSN),
		batch.WithWorkers(c.Workers),
		batch.WithMaskOptions(mask.WithDateLayouts(c.DateLayout)),
	}
}

// Source returns a seeded source when a seed is configured, otherwise one
// keyed from system entropy.
func (c Config) Source() (identity.Source, error) {
	if c.Seed != nil {
		return identity.NewSeededSource(*c.Seed), nil
	}
	return identity.NewSource()
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.TrimSpace(s)))
	return l, err
}

func layoutRoundTrips(layout string) bool {
	if layout == "" {
		return false
	}
	want := time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)
	got, err := time.Parse(layout, want.Format(layout))
	return err == nil && got.Equal(want)
}

func setInt(dst *int, field, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return &identity.ValidationError{Field: field, Value: v, Reason: "not an integer"}
	}
	*dst = n
	return nil
}

func setBool(dst *bool, field, v string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return &identity.ValidationError{Field: field, Value: v, Reason: "not a boolean"}
	}
	*dst = b
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
