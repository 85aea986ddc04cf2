package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/spf13/viper"

	"github.com/doclens/doclens/internal/doctype"
)

// Threshold holds the readability limits for one document type.
type Threshold struct {
	GradeCeiling  float64 `mapstructure:"grade_ceiling" yaml:"grade_ceiling"`
	FleschMinimum float64 `mapstructure:"flesch_minimum" yaml:"flesch_minimum"`
}

// TierCutoffs holds the grade-level bands that map to complexity tiers.
// Grade <= BeginnerMax is Beginner, <= IntermediateMax is Intermediate,
// anything above is Advanced.
type TierCutoffs struct {
	BeginnerMax     float64 `mapstructure:"beginner_max" yaml:"beginner_max"`
	IntermediateMax float64 `mapstructure:"intermediate_max" yaml:"intermediate_max"`
}

// Config is the immutable configuration for an analysis run. It is loaded
// once at process start and passed explicitly into the pipeline; nothing
// mutates it after Load returns.
type Config struct {
	WordsPerMinute    int                  `mapstructure:"words_per_minute"`
	ExemptionPercent  float64              `mapstructure:"exemption_percent"`
	TopN              int                  `mapstructure:"top_n"`
	MaxAvgGrade       float64              `mapstructure:"max_avg_grade"`
	Tiers             TierCutoffs          `mapstructure:"tiers"`
	Thresholds        map[string]Threshold `mapstructure:"thresholds"`
	TechnicalPatterns []string             `mapstructure:"technical_patterns"`

	technical []*regexp.Regexp
}

// defaultTechnicalPatterns match prose tokens that read as technical
// vocabulary: HTTP verbs, status codes, header names, and camelCase or
// snake_case identifiers that escaped code spans.
var defaultTechnicalPatterns = []string{
	`\b(?:GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)\b`,
	`\b[1-5][0-9]{2}\b`,
	`\b[A-Z][a-z]+(?:-[A-Z][a-z]+)+\b`,
	`\b[a-z][a-z0-9]*(?:[A-Z][a-zA-Z0-9]*)+\b`,
	`\b[a-zA-Z][a-zA-Z0-9]*(?:_[a-zA-Z0-9]+)+\b`,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("words_per_minute", 200)
	v.SetDefault("exemption_percent", 80.0)
	v.SetDefault("top_n", 5)
	v.SetDefault("max_avg_grade", 14.0)
	v.SetDefault("tiers.beginner_max", 11.0)
	v.SetDefault("tiers.intermediate_max", 17.0)
	v.SetDefault("thresholds.main.grade_ceiling", 14.0)
	v.SetDefault("thresholds.main.flesch_minimum", 30.0)
	v.SetDefault("thresholds.readme.grade_ceiling", 12.0)
	v.SetDefault("thresholds.readme.flesch_minimum", 40.0)
	v.SetDefault("thresholds.getting-started.grade_ceiling", 10.0)
	v.SetDefault("thresholds.getting-started.flesch_minimum", 50.0)
	v.SetDefault("thresholds.reference.grade_ceiling", 16.0)
	v.SetDefault("thresholds.reference.flesch_minimum", 30.0)
	v.SetDefault("technical_patterns", defaultTechnicalPatterns)
}

// Default returns the built-in configuration with no file overrides.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Defaults are static and validated by tests; this cannot fail.
		panic(err)
	}
	return cfg
}

// Load reads configuration from the given file path. An empty path loads
// a .doclens.yaml from the working directory when present, otherwise the
// built-in defaults. Any error here is fatal for the run: no document is
// analyzed with a half-loaded configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".doclens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration invariants and compiles the technical
// patterns. Called by Load, and again by the CLI after flag overrides.
func (c *Config) Validate() error {
	if c.WordsPerMinute <= 0 {
		return fmt.Errorf("invalid config: words_per_minute must be positive, got %d", c.WordsPerMinute)
	}
	if c.ExemptionPercent < 0 || c.ExemptionPercent > 100 {
		return fmt.Errorf("invalid config: exemption_percent must be within [0,100], got %g", c.ExemptionPercent)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("invalid config: top_n must be positive, got %d", c.TopN)
	}
	if c.Tiers.BeginnerMax >= c.Tiers.IntermediateMax {
		return fmt.Errorf("invalid config: tiers.beginner_max (%g) must be below tiers.intermediate_max (%g)",
			c.Tiers.BeginnerMax, c.Tiers.IntermediateMax)
	}
	for name := range c.Thresholds {
		if _, ok := doctype.Parse(name); !ok {
			return fmt.Errorf("invalid config: unknown document type %q in thresholds", name)
		}
	}
	for _, t := range doctype.All() {
		if _, ok := c.Thresholds[t.String()]; !ok {
			return fmt.Errorf("invalid config: missing threshold for document type %q", t)
		}
	}

	c.technical = make([]*regexp.Regexp, 0, len(c.TechnicalPatterns))
	for _, pattern := range c.TechnicalPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid config: bad technical pattern %q: %w", pattern, err)
		}
		c.technical = append(c.technical, re)
	}

	return nil
}

// ThresholdFor returns the readability limits for a document type.
func (c *Config) ThresholdFor(t doctype.DocType) Threshold {
	return c.Thresholds[t.String()]
}

// TechnicalRegexps returns the compiled technical-token patterns.
func (c *Config) TechnicalRegexps() []*regexp.Regexp {
	return c.technical
}
