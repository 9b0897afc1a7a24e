//go:build !ios && !android && (amd64 || arm64)

// Package bindings handles loading the Z3 shared library and registering
// function bindings using purego.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/z3go/internal/platform"
)

// ErrNotLoaded is returned when Z3 functions are called before Load().
var ErrNotLoaded = errors.New("z3go: Z3 library not loaded; call z3go.Init() first")

// ErrLibraryNotFound is returned when libz3 cannot be found.
var ErrLibraryNotFound = errors.New("z3go: Z3 library not found")

// ErrAlreadyLoaded is returned by Configure once Load has run.
var ErrAlreadyLoaded = errors.New("z3go: Z3 library already loaded")

// DefaultVersions are the major versions tried before the unversioned name.
var DefaultVersions = []int{4}

// Options controls where Load looks for libz3.
type Options struct {
	// Path, when set, is the only file tried.
	Path string
	// SearchPaths are tried before the platform defaults.
	SearchPaths []string
	// Versions overrides DefaultVersions.
	Versions []int
}

var (
	libZ3   uintptr
	libPath string

	optsMu sync.Mutex
	opts   Options

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

// Configure sets the options used by Load. It must be called before the
// first Load; afterwards it returns ErrAlreadyLoaded.
func Configure(o Options) error {
	optsMu.Lock()
	defer optsMu.Unlock()
	if loaded || loadErr != nil {
		return ErrAlreadyLoaded
	}
	opts = o
	return nil
}

// IsLoaded returns true if libz3 has been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads libz3 and registers all function bindings.
// It is safe to call multiple times; subsequent calls are no-ops.
// Returns an error if the library cannot be found or lacks a required symbol.
func Load() error {
	loadOnce.Do(func() {
		optsMu.Lock()
		o := opts
		optsMu.Unlock()

		err := doLoad(o)
		optsMu.Lock()
		loadErr = err
		loaded = err == nil
		optsMu.Unlock()
	})
	return loadErr
}

func doLoad(o Options) error {
	var err error
	if o.Path != "" {
		libZ3, err = tryOpen(o.Path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, o.Path, err)
		}
		libPath = o.Path
	} else {
		versions := o.Versions
		if len(versions) == 0 {
			versions = DefaultVersions
		}
		libZ3, libPath, err = loadLibrary("z3", versions, o.SearchPaths)
		if err != nil {
			return fmt.Errorf("loading libz3: %w", err)
		}
	}
	return registerSymbols(libZ3)
}

// loadLibrary attempts to load a library by trying versioned names over the
// search paths, then lets the dynamic loader resolve the bare names.
func loadLibrary(name string, versions []int, extra []string) (uintptr, string, error) {
	names := platform.CandidateNames(name, versions)

	for _, searchPath := range append(append([]string(nil), extra...), LibrarySearchPaths()...) {
		for _, libName := range names {
			fullPath := filepath.Join(searchPath, libName)
			if lib, err := tryOpen(fullPath); err == nil {
				return lib, fullPath, nil
			}
		}
	}

	for _, libName := range names {
		if lib, err := tryOpen(libName); err == nil {
			return lib, libName, nil
		}
	}

	return 0, "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// tryOpen attempts to open a library with RTLD_NOW | RTLD_GLOBAL.
func tryOpen(path string) (uintptr, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	return lib, nil
}

// FindLibrary searches for libz3 on disk and returns its full path.
// This is useful for diagnostics.
func FindLibrary(versions []int, extra ...string) (string, error) {
	names := platform.CandidateNames("z3", versions)
	for _, searchPath := range append(append([]string(nil), extra...), LibrarySearchPaths()...) {
		for _, libName := range names {
			fullPath := filepath.Join(searchPath, libName)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath, nil
			}
		}
	}
	return "", fmt.Errorf("%w: z3", ErrLibraryNotFound)
}

// LibrarySearchPaths returns platform-specific library search paths.
func LibrarySearchPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "linux", "freebsd":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/usr/lib64",
			"/lib",
		)

	case "darwin":
		if dyldPath := os.Getenv("DYLD_LIBRARY_PATH"); dyldPath != "" {
			paths = append(paths, filepath.SplitList(dyldPath)...)
		}
		paths = append(paths,
			"/opt/homebrew/lib",        // Apple Silicon
			"/usr/local/lib",           // Intel
			"/opt/homebrew/opt/z3/lib", // Homebrew z3
			"/usr/local/opt/z3/lib",    // Homebrew z3 (Intel)
		)

	case "windows":
		if winPath := os.Getenv("PATH"); winPath != "" {
			paths = append(paths, filepath.SplitList(winPath)...)
		}
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}
		paths = append(paths,
			"C:\\z3\\bin",
			"C:\\Program Files\\z3\\bin",
		)
	}

	return paths
}

// LibZ3 returns the libz3 library handle.
func LibZ3() uintptr {
	return libZ3
}

// LibraryPath returns the path libz3 was loaded from, or "" before Load.
func LibraryPath() string {
	return libPath
}
