// SPDX-License-Identifier: MPL-2.0

// Package testutil provides small helpers shared by the launcher tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// SetHomeDir points the platform home variable at dir and registers a
// cleanup that restores the original value.
func SetHomeDir(t testing.TB, dir string) {
	t.Helper()
	switch runtime.GOOS {
	case "windows":
		MustSetenv(t, "USERPROFILE", dir)
	default:
		MustSetenv(t, "HOME", dir)
	}
}

// MustSetenv sets key to value and registers a cleanup that restores or
// unsets the original value.
func MustSetenv(t testing.TB, key, value string) {
	t.Helper()
	original, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			if err := os.Setenv(key, original); err != nil {
				t.Errorf("failed to restore env %s: %v", key, err)
			}
			return
		}
		if err := os.Unsetenv(key); err != nil {
			t.Errorf("failed to unset env %s: %v", key, err)
		}
	})
}

// MustChdir changes into dir and registers a cleanup that returns to the
// original working directory.
func MustChdir(t testing.TB, dir string) {
	t.Helper()
	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(original); err != nil {
			t.Errorf("failed to restore directory %s: %v", original, err)
		}
	})
}

// WriteFile writes content to path, creating parent directories, and
// fails the test on error.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
