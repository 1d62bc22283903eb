// SPDX-License-Identifier: MPL-2.0

package env

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const (
	// RootKey names the resolved installation root in the environment.
	RootKey = "TEKTON_ROOT"
	// FrozenKey marks an environment that has already been through the
	// cascade. Components downstream skip their own env loading when they
	// see it set to "1".
	FrozenKey = "_TEKTON_ENV_FROZEN"
	// DebugKey is the master debug switch shared with the platform.
	DebugKey = "TEKTON_DEBUG"
	// LogLevelKey is the platform log level variable.
	LogLevelKey = "TEKTON_LOG_LEVEL"

	// UserEnvName is the user-wide env file under the home directory.
	UserEnvName = ".env"
	// PlatformEnvName is the tracked per-installation defaults file. Its
	// presence also marks a directory as an installation root.
	PlatformEnvName = ".env.tekton"
	// LocalEnvName is the gitignored per-installation overrides file.
	LocalEnvName = ".env.local"
)

// CascadeOptions configures a Cascade run.
type CascadeOptions struct {
	// Environ supplies the inherited process environment; defaults to
	// os.Environ() when nil.
	Environ []string
	// HomeDir supplies the user home directory; defaults to
	// os.UserHomeDir() when empty.
	HomeDir string
	// Debug forces TEKTON_DEBUG=true and TEKTON_LOG_LEVEL=DEBUG into the
	// merged result.
	Debug bool
	// Logger receives debug traces; defaults to the package default
	// logger when nil.
	Logger *log.Logger
}

// Cascade produces the effective environment for the installation rooted
// at root by layering, in order: the inherited process environment, the
// user file ~/.env, <root>/.env.tekton and <root>/.env.local. Later layers
// win. Every file is optional.
//
// When the inherited environment is already frozen the three files are
// skipped and the inherited values are used as-is; only the root and
// debug markers are refreshed.
func Cascade(root string, opts CascadeOptions) (*Map, error) {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := FromEnviron(environ)

	if frozen, _ := m.Get(FrozenKey); frozen == "1" {
		logger.Debug("environment already frozen, skipping env file cascade")
	} else {
		home := opts.HomeDir
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return nil, err
			}
		}

		for _, path := range []string{
			filepath.Join(home, UserEnvName),
			filepath.Join(root, PlatformEnvName),
			filepath.Join(root, LocalEnvName),
		} {
			before := m.Len()
			if err := LoadFile(m, path); err != nil {
				return nil, err
			}
			logger.Debug("loaded env layer", "path", path, "new", m.Len()-before)
		}
	}

	m.Set(RootKey, root)
	m.Set(FrozenKey, "1")

	if opts.Debug || m.GetDefault(DebugKey, "") == "true" {
		m.Set(DebugKey, "true")
		m.Set(LogLevelKey, "DEBUG")
	}

	return m, nil
}
