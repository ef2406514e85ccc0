// Package config loads hostdash settings from defaults, an optional YAML
// file and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	UI        UIConfig        `mapstructure:"ui"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Disk      DiskConfig      `mapstructure:"disk"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type UIConfig struct {
	Backend            string        `mapstructure:"backend" validate:"oneof=tcell tea"`
	FrameInterval      time.Duration `mapstructure:"frame_interval" validate:"gt=0,lte=10s"`
	UndersizedInterval time.Duration `mapstructure:"undersized_interval" validate:"gt=0,lte=10s"`
}

type MetricsConfig struct {
	Provider       string        `mapstructure:"provider" validate:"oneof=gopsutil procfs"`
	SampleInterval time.Duration `mapstructure:"sample_interval" validate:"gt=0,lte=1s"`
	Mount          string        `mapstructure:"mount" validate:"required"`
}

type DiskConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// LoggingConfig controls the diagnostic log. An empty File discards output,
// since the terminal belongs to the dashboard.
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=trace debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=1"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"` // days
}

// TelemetryConfig names a Prometheus textfile written when the dashboard
// exits. Empty disables it.
type TelemetryConfig struct {
	Textfile string `mapstructure:"textfile"`
}

const (
	globalConfigDir  = ".config/hostdash"
	globalConfigFile = "config.yaml"
)

// FlagKeys maps persistent flag names to the config keys they override.
var FlagKeys = map[string]string{
	"backend":   "ui.backend",
	"provider":  "metrics.provider",
	"log-file":  "logging.file",
	"log-level": "logging.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.backend", "tcell")
	v.SetDefault("ui.frame_interval", 100*time.Millisecond)
	v.SetDefault("ui.undersized_interval", 100*time.Millisecond)
	v.SetDefault("metrics.provider", "gopsutil")
	v.SetDefault("metrics.sample_interval", 100*time.Millisecond)
	v.SetDefault("metrics.mount", "/")
	v.SetDefault("disk.file", "./projecttwo.txt")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("telemetry.textfile", "")
}

// Default returns the configuration used when no file or flag is given.
func Default() Config {
	cfg, err := load(viper.New(), "", nil, false)
	if err != nil {
		panic(fmt.Sprintf("config defaults invalid: %v", err))
	}
	return *cfg
}

// Path returns ~/.config/hostdash/config.yaml, or "" without a home directory.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, globalConfigDir, globalConfigFile)
}

// Load builds the effective configuration. An explicit path must exist; the
// global file is read only if present. Flags listed in FlagKeys override the
// file when they were set on the command line.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	return load(viper.New(), path, flags, true)
}

func load(v *viper.Viper, path string, flags *pflag.FlagSet, useGlobal bool) (*Config, error) {
	setDefaults(v)
	v.SetConfigType("yaml")

	if path == "" && useGlobal {
		if p := Path(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate reports every invalid field, keyed by its config path.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, messageFor(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func messageFor(e validator.FieldError) string {
	key := e.Namespace()
	if i := strings.IndexByte(key, '.'); i >= 0 {
		key = key[i+1:] // drop the root struct name
	}
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, e.Param(), e.Value())
	case "gt", "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", key, e.Tag(), e.Param(), e.Value())
	}
	return fmt.Sprintf("%s is invalid", key)
}

// YAML renders the configuration in the file format Load accepts.
func (c *Config) YAML() ([]byte, error) {
	out := map[string]any{
		"ui": map[string]any{
			"backend":             c.UI.Backend,
			"frame_interval":      c.UI.FrameInterval.String(),
			"undersized_interval": c.UI.UndersizedInterval.String(),
		},
		"metrics": map[string]any{
			"provider":        c.Metrics.Provider,
			"sample_interval": c.Metrics.SampleInterval.String(),
			"mount":           c.Metrics.Mount,
		},
		"disk": map[string]any{
			"file": c.Disk.File,
		},
		"logging": map[string]any{
			"level":       c.Logging.Level,
			"format":      c.Logging.Format,
			"file":        c.Logging.File,
			"max_size":    c.Logging.MaxSize,
			"max_backups": c.Logging.MaxBackups,
			"max_age":     c.Logging.MaxAge,
		},
		"telemetry": map[string]any{
			"textfile": c.Telemetry.Textfile,
		},
	}
	return yaml.Marshal(out)
}
