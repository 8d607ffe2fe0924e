package elsimcfg

import (
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gosimilarity/elsim/elsimerr"
)

// Config holds every tunable of the similarity engine: the selected
// compressor and level, the two thresholds from spec §3 (SortThreshold
// is τ_sort, SimClamp is τ_sim), the default method filter's skip
// rule, and the signature grammar's include-prefix list.
type Config struct {
	// Compressor
	DefaultCompressor string
	Level             int

	// Session thresholds
	SortThreshold float64
	SimClamp      float64

	// Aggregate score flags
	IncludeNew      bool
	IncludeDeleted  bool

	// Methods filter preset (spec §4.5)
	MinMethodSize      int
	ExcludeClassRegexp string

	// Signature grammar (spec §4.3)
	IncludePrefixes []string

	// Logging
	LogLevel string
}

// Default returns the documented defaults from spec.md (τ_sort=0.8,
// τ_sim=0.2, SNAPPY compressor, level 9, method min size 15 bytes).
func Default() *Config {
	return &Config{
		DefaultCompressor: "SNAPPY",
		Level:             9,
		SortThreshold:     0.8,
		SimClamp:          0.2,
		IncludeNew:        true,
		IncludeDeleted:    true,
		MinMethodSize:     15,
		IncludePrefixes:   []string{"Landroid", "Ljava"},
		LogLevel:          "info",
	}
}

// Load reads configuration from environment variables and an optional
// .env file, falling back to Default() for anything unset. It
// validates eagerly: construction arguments outside their documented
// ranges fail fast with an InvalidInput error (spec §7), instead of
// being discovered later mid-comparison.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.DefaultCompressor = getEnv("ELSIM_COMPRESSOR", cfg.DefaultCompressor)
	cfg.Level = getEnvInt("ELSIM_LEVEL", cfg.Level)
	cfg.SortThreshold = getEnvFloat("ELSIM_TAU_SORT", cfg.SortThreshold)
	cfg.SimClamp = getEnvFloat("ELSIM_TAU_SIM", cfg.SimClamp)
	cfg.IncludeNew = getEnvBool("ELSIM_INCLUDE_NEW", cfg.IncludeNew)
	cfg.IncludeDeleted = getEnvBool("ELSIM_INCLUDE_DELETED", cfg.IncludeDeleted)
	cfg.MinMethodSize = getEnvInt("ELSIM_MIN_SIZE", cfg.MinMethodSize)
	cfg.ExcludeClassRegexp = getEnv("ELSIM_EXCLUDE_CLASS", cfg.ExcludeClassRegexp)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if prefixes := os.Getenv("ELSIM_INCLUDE_PREFIXES"); prefixes != "" {
		parts := strings.Split(prefixes, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		cfg.IncludePrefixes = cleaned
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every invariant eagerly, per spec §7.
func (c *Config) Validate() error {
	if c.Level < 1 || c.Level > 9 {
		return elsimerr.Newf(elsimerr.InvalidLevel, "level must be between 1 and 9, got %d", c.Level)
	}
	if !finiteUnit(c.SortThreshold) {
		return elsimerr.Newf(elsimerr.InvalidInput, "tau_sort must be finite and in [0,1], got %v", c.SortThreshold)
	}
	if !finiteUnit(c.SimClamp) {
		return elsimerr.Newf(elsimerr.InvalidInput, "tau_sim must be finite and in [0,1], got %v", c.SimClamp)
	}
	if c.MinMethodSize < 0 {
		return elsimerr.Newf(elsimerr.InvalidInput, "min method size must be non-negative, got %d", c.MinMethodSize)
	}
	if c.ExcludeClassRegexp != "" {
		if _, err := regexp.Compile(c.ExcludeClassRegexp); err != nil {
			return elsimerr.Newf(elsimerr.InvalidInput, "invalid exclude-class regexp %q: %v", c.ExcludeClassRegexp, err)
		}
	}
	return nil
}

func finiteUnit(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0 && f <= 1
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
