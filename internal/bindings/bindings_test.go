//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"testing"
)

func TestLibrarySearchPaths(t *testing.T) {
	paths := LibrarySearchPaths()
	if len(paths) == 0 {
		t.Error("LibrarySearchPaths should return at least one path")
	}
}

func TestFindLibrary(t *testing.T) {
	// We don't fail if Z3 isn't installed - just log
	path, err := FindLibrary(DefaultVersions)
	if err != nil {
		t.Logf("libz3 not found (expected if not installed): %v", err)
		return
	}
	t.Logf("libz3 found at %s", path)
}

func TestFamiliesIncludeAST(t *testing.T) {
	if prefix, ok := Families["ast"]; !ok || prefix != "Z3_" {
		t.Errorf("ast family prefix = %q, %v; want Z3_, true", prefix, ok)
	}
	for family, prefix := range Families {
		if prefix == "" {
			t.Errorf("family %s has empty symbol prefix", family)
		}
	}
}

func TestGuardsBeforeLoad(t *testing.T) {
	if IsLoaded() {
		t.Skip("library already loaded by another test")
	}
	if _, ok := Ref("ast"); ok {
		t.Error("Ref should report false before Load")
	}
	if _, err := NewSession(nil); err != ErrNotLoaded {
		t.Errorf("NewSession before Load = %v, want ErrNotLoaded", err)
	}
	if v := FullVersion(); v != "" {
		t.Errorf("FullVersion before Load = %q, want empty", v)
	}
	// Zero handles are ignored.
	DelContext(0)
	Interrupt(0)
}

// Integration test - only runs if libz3 is available
func TestLoadZ3(t *testing.T) {
	if testing.Short() {
		t.Log("Skipping libz3 load test in short mode")
		return
	}
	if _, err := FindLibrary(DefaultVersions); err != nil {
		t.Skipf("libz3 not available: %v", err)
	}

	if err := Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !IsLoaded() {
		t.Error("IsLoaded should be true after successful Load")
	}
	if err := Configure(Options{}); err != ErrAlreadyLoaded {
		t.Errorf("Configure after Load = %v, want ErrAlreadyLoaded", err)
	}

	major, minor, build, _ := Version()
	if major == 0 {
		t.Error("Version major should be non-zero after Load")
	}
	t.Logf("libz3 loaded from %s: %d.%d.%d", LibraryPath(), major, minor, build)

	ctx, err := NewSession(map[string]string{"model": "true"})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer DelContext(ctx)

	if code := ErrorCode(ctx); code != 0 {
		t.Errorf("fresh context error code = %d, want 0", code)
	}
}
