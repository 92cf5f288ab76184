package config

import (
	"fmt"
	"math"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Watch    WatchConfig    `yaml:"watch" json:"watch"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	Emoji         bool   `yaml:"emoji" json:"emoji"`                   // emoji symbols in reports
	Theme         string `yaml:"theme" json:"theme"`                   // interactive viewer theme
}

// AnalysisConfig configures signal analysis
type AnalysisConfig struct {
	RepeatFactor int           `yaml:"repeat_factor" json:"repeat_factor"` // long space = factor x running average
	BucketPolicy string        `yaml:"bucket_policy" json:"bucket_policy"` // zero|strict
	GroupSize    int           `yaml:"group_size" json:"group_size"`       // bits per reported group
	MaxFileSize  int64         `yaml:"max_file_size" json:"max_file_size"` // bytes read from a capture file
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
}

// LoggingConfig configures diagnostic logging on stderr
type LoggingConfig struct {
	Format string `yaml:"format" json:"format"` // text|json
}

// WatchConfig configures the watch command
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" json:"debounce"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Emoji:         true,
			Theme:         "default",
		},
		Analysis: AnalysisConfig{
			RepeatFactor: 10,
			BucketPolicy: "zero",
			GroupSize:    8,
			MaxFileSize:  10 * 1024 * 1024, // 10MB
			Timeout:      30 * time.Second,
		},
		Logging: LoggingConfig{
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	if err := c.validateLoggingConfig(); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}

// validateAnalysisConfig validates analysis-related configuration
func (c *Config) validateAnalysisConfig() error {
	if c.Analysis.RepeatFactor < 1 {
		return fmt.Errorf("repeat_factor must be greater than 0")
	}
	if int64(c.Analysis.RepeatFactor) > math.MaxUint32 {
		return fmt.Errorf("repeat_factor must be at most %d", uint64(math.MaxUint32))
	}
	if c.Analysis.BucketPolicy != "zero" && c.Analysis.BucketPolicy != "strict" {
		return fmt.Errorf("invalid bucket_policy: %s (must be one of: zero, strict)", c.Analysis.BucketPolicy)
	}
	if c.Analysis.GroupSize < 1 {
		return fmt.Errorf("group_size must be greater than 0")
	}
	if c.Analysis.MaxFileSize < 1 {
		return fmt.Errorf("max_file_size must be greater than 0")
	}
	if c.Analysis.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateLoggingConfig() error {
	switch c.Logging.Format {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid logging format: %s (must be one of: text, json)", c.Logging.Format)
	}
}
