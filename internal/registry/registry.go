// SPDX-License-Identifier: MPL-2.0

// Package registry resolves installation aliases against the till
// registry, the external record of named Tekton installations.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// PrimaryAlias is the well-known alias the root resolver falls back to.
	PrimaryAlias = "primary"

	installationsKey = "installations"
	registryFileName = "till-private.json"
)

// ErrNotFound reports that an alias could not be resolved. Missing registry
// file, missing installations section, no matching alias and a matching
// entry without a root all collapse into this one outcome; the caller
// decides whether it is fatal.
var ErrNotFound = errors.New("installation not found in registry")

type (
	// Installation is one named entry in the till registry. Only the root
	// path matters to the launcher; other fields are ignored.
	Installation struct {
		Root string `json:"root"`
	}

	// Registry looks up installations in a till registry file.
	Registry struct {
		// Path overrides the registry file location (used by tests).
		Path string
		// HomeDir overrides the home directory used for discovery.
		HomeDir string
		// Logger receives debug traces; defaults to log.Default().
		Logger *log.Logger
	}
)

// Lookup resolves alias to an installation root path.
//
// Matching is case-insensitive and prefix-tolerant: an entry matches when
// its lower-cased name starts with the lower-cased alias, so short forms
// like "coder-a" → "Coder-A1" resolve. Entries are scanned in file order
// and the first match carrying a root wins; a matching entry without a
// root is skipped and scanning continues.
func (r *Registry) Lookup(alias string) (string, error) {
	if alias == "" {
		return "", ErrNotFound
	}

	path, err := r.registryPath()
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		r.logger().Debug("registry file not readable", "path", path, "err", err)
		return "", ErrNotFound
	}
	defer f.Close()

	root, err := scanInstallations(json.NewDecoder(f), alias)
	if err != nil {
		// A broken registry is treated like an absent one; till owns the
		// file and the launcher has no business failing hard on it.
		r.logger().Warn("till registry is malformed", "path", path, "err", err)
		return "", ErrNotFound
	}
	if root == "" {
		return "", ErrNotFound
	}

	r.logger().Debug("resolved alias via registry", "alias", alias, "root", root)
	return root, nil
}

// registryPath locates the till registry: the .till entry under the home
// directory (commonly a symlink into the till checkout), falling back to
// the conventional till checkout location.
func (r *Registry) registryPath() (string, error) {
	if r.Path != "" {
		return r.Path, nil
	}

	home := r.HomeDir
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
	}

	dotTill := filepath.Join(home, ".till")
	if info, err := os.Stat(dotTill); err == nil && info.IsDir() {
		return filepath.Join(dotTill, "tekton", registryFileName), nil
	}
	return filepath.Join(home, "projects", "github", "till", "tekton", registryFileName), nil
}

func (r *Registry) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// scanInstallations walks the top level of the registry document looking
// for the installations section, then its entries in document order. The
// token-level walk keeps file order, which a plain map decode would lose;
// first-encountered-wins is part of the registry contract.
func scanInstallations(dec *json.Decoder, alias string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", fmt.Errorf("registry document is not a JSON object")
	}

	want := strings.ToLower(alias)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", err
		}
		key, _ := keyTok.(string)

		if key != installationsKey {
			// Skip the value of any section we do not understand.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return "", err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return "", fmt.Errorf("installations section is not a JSON object")
		}

		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return "", err
			}
			name, _ := nameTok.(string)

			var inst Installation
			if err := dec.Decode(&inst); err != nil {
				return "", err
			}

			if strings.HasPrefix(strings.ToLower(name), want) && inst.Root != "" {
				return inst.Root, nil
			}
		}
		return "", nil
	}
	return "", nil
}
