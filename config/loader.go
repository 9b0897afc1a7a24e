package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
// Z3GO_LIBRARY_PATH maps to library.path, Z3GO_PARAMS_MODEL to params.model.
// Within params a double underscore stands for a dot, so
// Z3GO_PARAMS_SMT__RANDOM_SEED sets params.smt.random_seed.
// Z3GO_LIBRARY_SEARCH_PATHS is a path list split on the OS list separator,
// and Z3GO_LIBRARY_VERSIONS is comma separated.
const EnvPrefix = "Z3GO_"

// ConfigFileName is the file Load reads when no explicit path is given.
const ConfigFileName = "z3go.yaml"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"library":     "library.path",
	"search-path": "library.search_paths",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// ParamFlag is the repeatable key=value flag that sets params.*.
const ParamFlag = "param"

// Load builds a Config.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// path may be empty, in which case ./z3go.yaml is used if it exists.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"library.versions": def.Library.Versions,
		"log.level":        def.Log.Level,
		"log.format":       def.Log.Format,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			path = ConfigFileName
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment: Z3GO_LOG_LEVEL -> log.level
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
		if err := loadParamFlags(k, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Params == nil {
		cfg.Params = map[string]any{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey turns Z3GO_LIBRARY_SEARCH_PATHS into library.search_paths: the first
// underscore after the prefix separates the section from the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	if section == "params" {
		key = strings.ReplaceAll(key, "__", ".")
	}
	return section + "." + key
}

// envKeyValue maps one environment variable to its key and decoded value.
func envKeyValue(name, value string) (string, interface{}) {
	key := envKey(name)
	switch key {
	case "library.search_paths":
		return key, filepath.SplitList(value)
	case "library.versions":
		var versions []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				versions = append(versions, v)
			}
		}
		return key, versions
	}
	return key, value
}

func loadParamFlags(k *koanf.Koanf, flags *pflag.FlagSet) error {
	f := flags.Lookup(ParamFlag)
	if f == nil || !f.Changed {
		return nil
	}
	pairs, err := flags.GetStringArray(ParamFlag)
	if err != nil {
		return fmt.Errorf("--%s: %w", ParamFlag, err)
	}
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return fmt.Errorf("--%s: expected key=value, got %q", ParamFlag, p)
		}
		if err := k.Set("params."+key, val); err != nil {
			return fmt.Errorf("--%s %s: %w", ParamFlag, key, err)
		}
	}
	return nil
}
