package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "z3go.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("library", "", "")
	fs.StringSlice("search-path", nil, "")
	fs.String("log-level", "", "")
	fs.String("log-format", "", "")
	fs.StringArray(ParamFlag, nil, "")
	fs.Bool("unrelated", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, DefaultVersions, cfg.Library.Versions)
	assert.Empty(t, cfg.Library.Path)
	assert.Empty(t, cfg.SessionParams())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
library:
  path: /opt/z3/lib/libz3.so
  search_paths: [/opt/z3/lib, /usr/local/lib]
  versions: [4]
params:
  model: true
  smt:
    random_seed: 42
log:
  level: debug
  format: json
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/opt/z3/lib/libz3.so", cfg.Library.Path)
	assert.Equal(t, []string{"/opt/z3/lib", "/usr/local/lib"}, cfg.Library.SearchPaths)
	assert.Equal(t, []int{4}, cfg.Library.Versions)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, map[string]string{
		"model":           "true",
		"smt.random_seed": "42",
	}, cfg.SessionParams())
}

func TestLoadPicksUpLocalFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("log:\n  level: info\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\nlibrary:\n  path: /from/file\n")
	t.Setenv("Z3GO_LOG_LEVEL", "error")
	t.Setenv("Z3GO_LIBRARY_PATH", "/from/env")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/from/env", cfg.Library.Path)
}

func TestLoadEnvLists(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("Z3GO_LIBRARY_SEARCH_PATHS", "/a"+string(os.PathListSeparator)+"/b")
	t.Setenv("Z3GO_LIBRARY_VERSIONS", "4, 5")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Library.SearchPaths)
	assert.Equal(t, []int{4, 5}, cfg.Library.Versions)
}

func TestLoadEnvParams(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("Z3GO_PARAMS_MODEL", "true")
	t.Setenv("Z3GO_PARAMS_SMT__RANDOM_SEED", "7")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"model":           "true",
		"smt.random_seed": "7",
	}, cfg.SessionParams())
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Z3GO_LOG_LEVEL", "log.level"},
		{"Z3GO_LIBRARY_SEARCH_PATHS", "library.search_paths"},
		{"Z3GO_PARAMS_TIMEOUT", "params.timeout"},
		{"Z3GO_PARAMS_SAT__RESTART__MAX", "params.sat.restart.max"},
		{"Z3GO_LOG", "log"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, envKey(tt.in), tt.in)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("Z3GO_LOG_LEVEL", "error")
	t.Setenv("Z3GO_LIBRARY_PATH", "/from/env")

	fs := newFlags(t,
		"--log-level", "debug",
		"--search-path", "/a,/b",
		"--param", "model=true",
		"--param", "smt.random_seed=3",
		"--unrelated")

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset flags leave lower layers alone.
	assert.Equal(t, "/from/env", cfg.Library.Path)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Library.SearchPaths)
	assert.Equal(t, map[string]string{
		"model":           "true",
		"smt.random_seed": "3",
	}, cfg.SessionParams())
}

func TestLoadBadParamFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("", newFlags(t, "--param", "novalue"))
	assert.ErrorContains(t, err, "key=value")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Log.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "log.level")

	cfg = Default()
	cfg.Log.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "log.format")

	cfg = Default()
	cfg.Library.Versions = []int{-1}
	assert.ErrorContains(t, cfg.Validate(), "library.versions")
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "log:\n  format: xml\n")
	_, err := Load(path, nil)
	assert.ErrorContains(t, err, "log.format")
}

func TestSessionParamsSkipsNil(t *testing.T) {
	cfg := Default()
	cfg.Params = map[string]any{"proof": nil, "timeout": 500}
	assert.Equal(t, map[string]string{"timeout": "500"}, cfg.SessionParams())
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		cfg := Default()
		cfg.Log.Format = format
		cfg.Log.Level = "info"

		log, err := cfg.NewLogger()
		require.NoError(t, err, format)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel), format)
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel), format)
	}

	cfg := Default()
	cfg.Log.Level = "nope"
	_, err := cfg.NewLogger()
	assert.Error(t, err)
}
