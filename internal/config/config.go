// Package config loads the navigator configuration from YAML over built-in
// defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"deepspace-navigator/internal/hazard"
	"deepspace-navigator/internal/legality"
	"deepspace-navigator/internal/planner"
)

// PassphraseEnv overrides export.passphrase so the secret can stay out of
// the config file
const PassphraseEnv = "NAVIGATOR_EXPORT_PASSPHRASE"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Config is the full navigator configuration.
//
// Safe to read concurrently. Not safe to modify after Load returns.
type Config struct {
	Server    ServerConfig        `yaml:"server"`
	Scenarios ScenariosConfig     `yaml:"scenarios"`
	Sampling  hazard.SampleConfig `yaml:"sampling"`
	Legality  LegalityConfig      `yaml:"legality"`
	Export    ExportConfig        `yaml:"export"`
	Log       LogConfig           `yaml:"log"`
}

// ServerConfig contains HTTP settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	CORSOrigins     []string      `yaml:"cors_origins" validate:"dive,required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// ScenariosConfig locates the scenario repository.
type ScenariosConfig struct {
	Root              string  `yaml:"root" validate:"required"`
	NamesFile         string  `yaml:"names_file"`
	SimplifyTolerance float64 `yaml:"simplify_tolerance" validate:"gte=0"`
	MergeTolerance    float64 `yaml:"merge_tolerance" validate:"gte=0"`
}

// LegalityConfig contains the detection zone crossing rule.
type LegalityConfig struct {
	MaxCrossingDeviationDeg float64 `yaml:"max_crossing_deviation_deg" validate:"gte=0,lte=90"`
}

// ExportConfig contains the export encryption settings. An empty passphrase
// disables exports.
type ExportConfig struct {
	Passphrase string `yaml:"passphrase"`
	Iterations int    `yaml:"iterations" validate:"gte=0"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":7324",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Scenarios: ScenariosConfig{
			Root:      "resources/scenarios",
			NamesFile: "resources/scenario_names.json",
		},
		Sampling: hazard.DefaultSampleConfig(),
		Legality: LegalityConfig{MaxCrossingDeviationDeg: 45},
		Export:   ExportConfig{},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults and validates the result. An empty path
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	if v := os.Getenv(PassphraseEnv); v != "" {
		cfg.Export.Passphrase = v
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys missing from data keep cfg's values;
// unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// PlannerOptions converts the sampling and legality sections.
func (c *Config) PlannerOptions(logger *slog.Logger) planner.Options {
	return planner.Options{
		Samples: c.Sampling,
		Legality: legality.Options{
			MaxCrossingDeviation: c.Legality.MaxCrossingDeviationDeg * math.Pi / 180,
		},
		Logger: logger,
	}
}

// NewLogger builds the slog logger described by c, writing to w.
func NewLogger(c LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
