//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"github.com/obinnaokechukwu/z3go/config"
	"github.com/obinnaokechukwu/z3go/internal/bindings"
)

// Init loads libz3. It is called automatically by NewContext with the default
// backend, but can be called explicitly to check for errors.
// It is safe to call multiple times.
func Init() error {
	return bindings.Load()
}

// InitWithConfig loads libz3 from the locations in cfg. It must run before
// any other Init or NewContext call; once the library is loaded the
// configuration can no longer change and ErrAlreadyLoaded is returned.
func InitWithConfig(cfg *config.Config) error {
	if cfg != nil {
		if err := bindings.Configure(bindings.Options{
			Path:        cfg.Library.Path,
			SearchPaths: cfg.Library.SearchPaths,
			Versions:    cfg.Library.Versions,
		}); err != nil {
			return err
		}
	}
	return bindings.Load()
}

// ErrAlreadyLoaded is returned by InitWithConfig after libz3 is loaded.
var ErrAlreadyLoaded = bindings.ErrAlreadyLoaded

// IsLoaded returns true if libz3 has been successfully loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// Version returns the libz3 version components.
func Version() (major, minor, build, revision uint32) {
	return bindings.Version()
}

// FullVersion returns the libz3 version string.
func FullVersion() string {
	return bindings.FullVersion()
}

// LibraryPath returns where libz3 was loaded from.
func LibraryPath() string {
	return bindings.LibraryPath()
}
