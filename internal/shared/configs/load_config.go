package configs

import (
	"errors"
	"fmt"
	"strings"

	"outlog/internal/models"
	"outlog/internal/patterns"
	"outlog/internal/shared/validators"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. OUTLOG_INPUT_DIR or OUTLOG_COMPACTION_WORKERS.
const EnvPrefix = "OUTLOG"

const tagTraceFrame = "traceframe"

// LoadConfig reads configuration from file, applies environment overrides and validates it.
// An empty configPath loads the built-in defaults.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("input.dir", ".")
	v.SetDefault("input.glob", "*.log")
	v.SetDefault("input.project_root", patterns.DefaultProjectRoot)
	v.SetDefault("input.marker", models.DefaultFrameMarker)

	v.SetDefault("output.dir", "concise_logs")
	v.SetDefault("output.report_dir", "concise_logs/reports")

	v.SetDefault("compaction.workers", 4)
	v.SetDefault("compaction.max_line_bytes", 16*1024*1024)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.max_body_bytes", 64*1024*1024)

	v.SetDefault("watch.debounce_ms", 250)
	v.SetDefault("watch.partitions", 4)
	v.SetDefault("watch.buffer_size", 128)
}

// Validate checks the config, e.g. after command line flags were applied on top of it.
func (c *Config) Validate() error {
	validate, err := validators.New(validators.Rule{Tag: tagTraceFrame, Fn: validateTraceFrame})
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		var ve validators.ValidationErrors
		if !errors.As(err, &ve) {
			return fmt.Errorf("config validation failed: %w", err)
		}
		validationErrors := make([]string, 0, len(ve))
		for _, e := range ve {
			validationErrors = append(validationErrors, formatValidationError(e))
		}
		return fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}
	return nil
}

// validateTraceFrame checks a pattern line against the configured marker and project root.
func validateTraceFrame(fl validators.FieldLevel) bool {
	input := InputConfig{Marker: models.DefaultFrameMarker, ProjectRoot: patterns.DefaultProjectRoot}
	switch top := fl.Top().Interface().(type) {
	case *Config:
		input = top.Input
	case Config:
		input = top.Input
	}
	return models.ValidatePatternLine(fl.Field().String(), input.Marker, input.LinePrefix()) == nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Server.Port" -> "server.port")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	case tagTraceFrame:
		msg = fmt.Sprintf("%s (not a trace frame under project root: %q)", field, e.Value())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
