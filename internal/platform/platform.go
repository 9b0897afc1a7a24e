//go:build !ios && !android && (amd64 || arm64)

// Package platform provides platform detection and library naming for z3go.
package platform

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Is64Bit indicates whether the platform is 64-bit.
// purego only supports 64-bit targets, and Z3 handles are pointer-sized.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
// Z3 ships as libz3 on every OS, including Windows (libz3.dll).
const LibraryPrefix = "lib"

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
	case "windows":
		LibraryExtension = ".dll"
	default: // linux, freebsd, etc.
		LibraryExtension = ".so"
	}
}

// FormatLibraryName returns the platform-specific library filename.
// If version is 0, returns the unversioned library name. Windows builds of
// Z3 are never versioned, so version is ignored there.
//
// Examples:
//   - Linux:   FormatLibraryName("z3", 4) -> "libz3.so.4"
//   - macOS:   FormatLibraryName("z3", 4) -> "libz3.4.dylib"
//   - Windows: FormatLibraryName("z3", 4) -> "libz3.dll"
func FormatLibraryName(name string, version int) string {
	switch runtime.GOOS {
	case "darwin":
		if version > 0 {
			return fmt.Sprintf("%s%s.%d%s", LibraryPrefix, name, version, LibraryExtension)
		}
	case "windows":
		// no versioned names
	default:
		if version > 0 {
			return fmt.Sprintf("%s%s%s.%d", LibraryPrefix, name, LibraryExtension, version)
		}
	}
	return LibraryPrefix + name + LibraryExtension
}

// CandidateNames returns the file names to try for a library, most specific
// first, ending with the unversioned name. Duplicates are removed.
func CandidateNames(name string, versions []int) []string {
	seen := make(map[string]bool, len(versions)+1)
	names := make([]string, 0, len(versions)+1)
	for _, v := range append(append([]int(nil), versions...), 0) {
		n := FormatLibraryName(name, v)
		if seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}
