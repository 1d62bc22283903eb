// SPDX-License-Identifier: MPL-2.0

package install

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tekton-cli/internal/env"
	"tekton-cli/internal/registry"
)

// fakeAliases is an in-memory Aliases implementation.
type fakeAliases struct {
	entries map[string]string
	queried []string
}

func (f *fakeAliases) Lookup(alias string) (string, error) {
	f.queried = append(f.queried, alias)
	if root, ok := f.entries[alias]; ok {
		return root, nil
	}
	return "", registry.ErrNotFound
}

// makeRoot creates a directory that passes the installation predicate.
func makeRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, env.PlatformEnvName), []byte("TEKTON_DEBUG=false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newResolver(reg Aliases, cwd string, environ map[string]string) *Resolver {
	return &Resolver{
		Registry: reg,
		Getwd:    func() (string, error) { return cwd, nil },
		Getenv:   func(key string) string { return environ[key] },
	}
}

func TestIsRoot(t *testing.T) {
	t.Parallel()

	if !IsRoot(makeRoot(t)) {
		t.Error("IsRoot() = false for directory with marker file")
	}
	if IsRoot(t.TempDir()) {
		t.Error("IsRoot() = true for empty directory")
	}
}

func TestResolvePathSelector(t *testing.T) {
	t.Parallel()

	root := makeRoot(t)
	r := newResolver(&fakeAliases{}, t.TempDir(), nil)

	got, err := r.Resolve(root, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != root {
		t.Errorf("Resolve() = %q, want %q", got, root)
	}
}

func TestResolvePathSelectorInvalidIsFatal(t *testing.T) {
	t.Parallel()

	// A path-like selector that is not a valid root must fail without
	// falling through to alias lookup.
	reg := &fakeAliases{entries: map[string]string{"primary": "/opt/Tekton"}}
	r := newResolver(reg, t.TempDir(), nil)

	if _, err := r.Resolve(t.TempDir(), ""); err == nil {
		t.Fatal("Resolve() succeeded for invalid path selector")
	}
	if len(reg.queried) != 0 {
		t.Errorf("registry queried %v; path selectors must never reach alias lookup", reg.queried)
	}
}

func TestResolveAliasSelector(t *testing.T) {
	t.Parallel()

	// Alias results are trusted without marker validation, so the target
	// need not exist.
	reg := &fakeAliases{entries: map[string]string{"myalias": "/opt/Elsewhere"}}
	r := newResolver(reg, t.TempDir(), nil)

	got, err := r.Resolve("myalias", "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != "/opt/Elsewhere" {
		t.Errorf("Resolve() = %q, want %q", got, "/opt/Elsewhere")
	}
}

func TestResolveAliasSelectorMiss(t *testing.T) {
	t.Parallel()

	r := newResolver(&fakeAliases{}, t.TempDir(), nil)
	if _, err := r.Resolve("ghost", ""); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound in chain", err)
	}
}

func TestResolveWorkingDirectory(t *testing.T) {
	t.Parallel()

	root := makeRoot(t)
	r := newResolver(&fakeAliases{}, root, nil)

	got, err := r.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != root {
		t.Errorf("Resolve() = %q, want %q", got, root)
	}
}

func TestResolveEnvOverride(t *testing.T) {
	t.Parallel()

	root := makeRoot(t)
	r := newResolver(&fakeAliases{}, t.TempDir(), map[string]string{env.RootKey: root})

	got, err := r.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != root {
		t.Errorf("Resolve() = %q, want %q", got, root)
	}
}

func TestResolvePrimaryFallback(t *testing.T) {
	t.Parallel()

	reg := &fakeAliases{entries: map[string]string{"primary": "/opt/Tekton"}}
	r := newResolver(reg, t.TempDir(), nil)

	got, err := r.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != "/opt/Tekton" {
		t.Errorf("Resolve() = %q, want %q", got, "/opt/Tekton")
	}
}

func TestResolveSiblingFallback(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	sibling := filepath.Join(parent, SiblingName)
	if err := os.MkdirAll(sibling, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sibling, env.PlatformEnvName), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	cwd := filepath.Join(parent, "elsewhere")
	if err := os.MkdirAll(cwd, 0o755); err != nil {
		t.Fatal(err)
	}

	r := newResolver(&fakeAliases{}, cwd, nil)
	got, err := r.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != sibling {
		t.Errorf("Resolve() = %q, want %q", got, sibling)
	}
}

func TestResolveExhausted(t *testing.T) {
	t.Parallel()

	r := newResolver(&fakeAliases{}, t.TempDir(), nil)
	if _, err := r.Resolve("", ""); !errors.Is(err, ErrNoRoot) {
		t.Errorf("Resolve() error = %v, want ErrNoRoot", err)
	}
}

func TestResolveCoderSelector(t *testing.T) {
	t.Parallel()

	t.Run("hit", func(t *testing.T) {
		t.Parallel()

		reg := &fakeAliases{entries: map[string]string{"coder-d": "/opt/Coder-D"}}
		r := newResolver(reg, t.TempDir(), nil)

		got, err := r.Resolve("", "D")
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if got != "/opt/Coder-D" {
			t.Errorf("Resolve() = %q, want %q", got, "/opt/Coder-D")
		}
	})

	t.Run("miss is fatal with no fallback", func(t *testing.T) {
		t.Parallel()

		// Even with a perfectly good cwd installation, a coder miss must
		// not fall back to the chain.
		root := makeRoot(t)
		reg := &fakeAliases{}
		r := newResolver(reg, root, nil)

		if _, err := r.Resolve("", "d"); err == nil {
			t.Fatal("Resolve() succeeded for unregistered coder letter")
		}
		if want := []string{"coder-d"}; len(reg.queried) != 1 || reg.queried[0] != want[0] {
			t.Errorf("registry queries = %v, want %v", reg.queried, want)
		}
	})
}

func TestCoderAlias(t *testing.T) {
	t.Parallel()

	if got := CoderAlias("D"); got != "coder-d" {
		t.Errorf("CoderAlias(D) = %q, want %q", got, "coder-d")
	}
}

func TestIsPathLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  bool
	}{
		{"/abs/path", true},
		{"rel/path", true},
		{".", true},
		{"./here", true},
		{"..", true},
		{"myalias", false},
		{"coder-a", false},
	}
	for _, tt := range tests {
		if got := isPathLike(tt.token); got != tt.want {
			t.Errorf("isPathLike(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
