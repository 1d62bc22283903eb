// SPDX-License-Identifier: MPL-2.0

// Package install resolves which Tekton installation the launcher
// operates on.
package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tekton-cli/internal/env"
	"tekton-cli/internal/registry"

	"github.com/charmbracelet/log"
)

// SiblingName is the conventional installation directory checked as the
// last resort, relative to the current directory.
const SiblingName = "Tekton"

// ErrNoRoot reports that the whole fallback chain was exhausted.
var ErrNoRoot = errors.New("no Tekton installation found")

// Aliases implements registry alias resolution; satisfied by
// *registry.Registry and mocked in tests.
type Aliases interface {
	Lookup(alias string) (string, error)
}

// Resolver determines the effective installation root.
type Resolver struct {
	Registry Aliases
	// Getwd overrides os.Getwd (used by tests).
	Getwd func() (string, error)
	// Getenv overrides os.Getenv (used by tests).
	Getenv func(string) string
	// Logger receives debug traces; defaults to log.Default().
	Logger *log.Logger
}

// IsRoot reports whether dir is a valid installation root, identified by
// the platform env file at its top level.
func IsRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, env.PlatformEnvName))
	return err == nil && !info.IsDir()
}

// CoderAlias maps a legacy single-letter selector to its registry alias.
func CoderAlias(letter string) string {
	return "coder-" + strings.ToLower(letter)
}

// Resolve produces the installation root for the given selectors.
//
// A coder letter, when present, is resolved through the registry alone
// and any miss is fatal; it never falls through to the chain below.
// Otherwise the chain is, first success wins:
//
//  1. a path-like selector (contains a separator or starts with '.'),
//     accepted only if it is a valid root
//  2. a non-path selector, resolved as a registry alias
//  3. the current working directory, if it is a valid root
//  4. the TEKTON_ROOT environment variable, if set and valid; then the
//     registry "primary" alias; then the conventional ../Tekton sibling
func (r *Resolver) Resolve(selector, coderLetter string) (string, error) {
	if coderLetter != "" {
		alias := CoderAlias(coderLetter)
		root, err := r.Registry.Lookup(alias)
		if err != nil {
			return "", fmt.Errorf("coder environment %q is not registered: %w", alias, err)
		}
		r.logger().Debug("resolved root via coder selector", "alias", alias, "root", root)
		return root, nil
	}

	if selector != "" {
		if isPathLike(selector) {
			abs, err := filepath.Abs(selector)
			if err != nil {
				return "", err
			}
			if !IsRoot(abs) {
				return "", fmt.Errorf("%q is not a Tekton installation (missing %s): %w",
					selector, env.PlatformEnvName, ErrNoRoot)
			}
			r.logger().Debug("resolved root from explicit path", "root", abs)
			return abs, nil
		}

		// The registry is authoritative for aliases; its answer is not
		// re-validated against the marker file.
		root, err := r.Registry.Lookup(selector)
		if err != nil {
			return "", fmt.Errorf("unknown installation %q: %w", selector, err)
		}
		r.logger().Debug("resolved root from alias", "alias", selector, "root", root)
		return root, nil
	}

	cwd, err := r.getwd()
	if err != nil {
		return "", err
	}
	if IsRoot(cwd) {
		r.logger().Debug("resolved root from working directory", "root", cwd)
		return cwd, nil
	}

	if override := r.getenv(env.RootKey); override != "" && IsRoot(override) {
		r.logger().Debug("resolved root from environment", "root", override)
		return override, nil
	}

	if root, err := r.Registry.Lookup(registry.PrimaryAlias); err == nil {
		r.logger().Debug("resolved root from primary registry entry", "root", root)
		return root, nil
	}

	sibling := filepath.Join(filepath.Dir(cwd), SiblingName)
	if IsRoot(sibling) {
		r.logger().Debug("resolved root from conventional sibling", "root", sibling)
		return sibling, nil
	}

	return "", ErrNoRoot
}

// isPathLike distinguishes literal paths from registry aliases.
func isPathLike(token string) bool {
	return strings.ContainsRune(token, os.PathSeparator) ||
		strings.ContainsRune(token, '/') ||
		strings.HasPrefix(token, ".")
}

func (r *Resolver) getwd() (string, error) {
	if r.Getwd != nil {
		return r.Getwd()
	}
	return os.Getwd()
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv != nil {
		return r.Getenv(key)
	}
	return os.Getenv(key)
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
