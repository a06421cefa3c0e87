package configs

import (
	"outlog/internal/models"
)

// Config holds all configuration for the application.
type Config struct {
	Log        LogConfig        `mapstructure:"log" validate:"required"`
	Input      InputConfig      `mapstructure:"input" validate:"required"`
	Output     OutputConfig     `mapstructure:"output" validate:"required"`
	Compaction CompactionConfig `mapstructure:"compaction" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Watch      WatchConfig      `mapstructure:"watch" validate:"required"`
	Patterns   []PatternConfig  `mapstructure:"patterns" validate:"omitempty,dive"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// InputConfig describes where outlogs are read from and which frame lines are kept.
type InputConfig struct {
	Dir         string `mapstructure:"dir" validate:"required"`
	Glob        string `mapstructure:"glob" validate:"required"`
	ProjectRoot string `mapstructure:"project_root" validate:"required"`
	Marker      string `mapstructure:"marker" validate:"required"`
}

// LinePrefix is the prefix a raw line must start with to be kept.
func (c InputConfig) LinePrefix() string {
	return c.Marker + c.ProjectRoot
}

// OutputConfig holds where filtered logs and run reports are written, relative to the input dir.
type OutputConfig struct {
	Dir       string `mapstructure:"dir" validate:"required,excludesall=/"`
	ReportDir string `mapstructure:"report_dir" validate:"required"`
}

// CompactionConfig holds compaction tuning.
type CompactionConfig struct {
	Workers      int `mapstructure:"workers" validate:"required,min=1,max=64"`
	MaxLineBytes int `mapstructure:"max_line_bytes" validate:"required,min=1024"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
	MaxBodyBytes      int `mapstructure:"max_body_bytes" validate:"required,min=1"`
}

// WatchConfig holds watch mode configuration.
type WatchConfig struct {
	DebounceMillis int `mapstructure:"debounce_ms" validate:"min=0"`
	Partitions     int `mapstructure:"partitions" validate:"required,min=1,max=64"`
	BufferSize     int `mapstructure:"buffer_size" validate:"required,min=1"`
}

// PatternConfig declares one loop pattern. Every line must be a trace frame; the
// remaining shape rules are checked when the catalogue is built.
type PatternConfig struct {
	Name           string   `mapstructure:"name" validate:"required"`
	Lines          []string `mapstructure:"lines" validate:"omitempty,dive,traceframe"`
	PrefixLines    []string `mapstructure:"prefix_lines" validate:"omitempty,dive,traceframe"`
	SuffixBlock    []string `mapstructure:"suffix_block" validate:"omitempty,dive,traceframe"`
	VariableSuffix bool     `mapstructure:"variable_suffix"`
}

func (p PatternConfig) ToPattern() models.Pattern {
	return models.Pattern{
		Name:             p.Name,
		Lines:            p.Lines,
		PrefixLines:      p.PrefixLines,
		SuffixBlock:      p.SuffixBlock,
		IsVariableSuffix: p.VariableSuffix || len(p.PrefixLines) > 0,
	}
}

// CataloguePatterns returns the configured patterns, or nil when the default catalogue applies.
func (c *Config) CataloguePatterns() []models.Pattern {
	if len(c.Patterns) == 0 {
		return nil
	}
	out := make([]models.Pattern, 0, len(c.Patterns))
	for _, p := range c.Patterns {
		out = append(out, p.ToPattern())
	}
	return out
}
