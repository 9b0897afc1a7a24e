// Package config loads z3go settings from defaults, a YAML file, Z3GO_
// environment variables and command-line flags.
package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Default configuration values.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
)

// DefaultVersions are the libz3 major versions tried before the unversioned
// library name.
var DefaultVersions = []int{4}

// LibraryConfig locates libz3.
type LibraryConfig struct {
	Path        string   `koanf:"path"`
	SearchPaths []string `koanf:"search_paths"`
	Versions    []int    `koanf:"versions"`
}

// LogConfig selects the zap logger built by NewLogger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Config is the complete z3go configuration.
type Config struct {
	Library LibraryConfig `koanf:"library"`
	// Params are Z3 context parameters. Nested maps come from dotted
	// parameter names such as smt.random_seed.
	Params map[string]any `koanf:"params"`
	Log    LogConfig      `koanf:"log"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Library: LibraryConfig{Versions: slices.Clone(DefaultVersions)},
		Params:  map[string]any{},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want console or json)", c.Log.Format)
	}
	for _, v := range c.Library.Versions {
		if v < 0 {
			return fmt.Errorf("library.versions: negative version %d", v)
		}
	}
	return nil
}

// SessionParams flattens Params into the string key/value pairs passed to
// Z3_set_param_value. Nested maps are joined with dots.
func (c *Config) SessionParams() map[string]string {
	out := make(map[string]string, len(c.Params))
	flatten("", c.Params, out)
	return out
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(in)) {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := in[k].(type) {
		case map[string]any:
			flatten(key, v, out)
		case nil:
			// unset
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

// NewLogger builds a zap logger for the configured level and format.
func (c *Config) NewLogger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	var zc zap.Config
	if strings.EqualFold(c.Log.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
