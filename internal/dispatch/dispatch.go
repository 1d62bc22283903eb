// SPDX-License-Identifier: MPL-2.0

// Package dispatch maps a parsed subcommand to its target executable and
// performs the final process-image replacement. Everything up to Exec is
// a pure value computation so tests can intercept the terminal action.
package dispatch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"tekton-cli/internal/cliargs"
	"tekton-cli/internal/env"

	"github.com/charmbracelet/log"
)

const (
	// ScriptsDir is the conventional script directory below the root.
	ScriptsDir = "scripts"

	statusScript = "enhanced_tekton_status.py"
	launchScript = "enhanced_tekton_launcher.py"
	killScript   = "enhanced_tekton_killer.py"
	revertScript = "tekton_revert.py"

	// DefaultInterpreter runs the platform scripts.
	DefaultInterpreter = "python3"
)

type (
	// Target is the terminal action of a launcher run: the executable to
	// become, its argument vector (argv[0] included) and its environment.
	Target struct {
		Path string
		Argv []string
		Env  []string
	}

	// Execer performs the image replacement. The launcher does not
	// survive a successful Exec; a return always means failure.
	Execer interface {
		Exec(t Target) error
	}

	// Dispatcher builds and executes dispatch targets.
	Dispatcher struct {
		// Interpreter overrides DefaultInterpreter.
		Interpreter string
		// TillBinary overrides the conventional till location.
		TillBinary string
		// HomeDir overrides os.UserHomeDir (used by tests).
		HomeDir string
		// Execer performs the exec; defaults to the real one.
		Execer Execer
		// Logger receives debug traces; defaults to log.Default().
		Logger *log.Logger
	}
)

// Resolve maps subcommand and its arguments to a Target rooted at root,
// carrying the merged environment. Unknown subcommands are rejected here
// even though the argument parser enforces the same closed set.
func (d *Dispatcher) Resolve(subcommand string, args []string, root string, m *env.Map) (Target, error) {
	switch subcommand {
	case cliargs.CmdStatus:
		return d.scriptTarget(root, statusScript, args, m)
	case cliargs.CmdStart, cliargs.CmdLaunch:
		return d.scriptTarget(root, launchScript, args, m)
	case cliargs.CmdStop, cliargs.CmdKill:
		return d.scriptTarget(root, killScript, args, m)
	case cliargs.CmdRevert:
		return d.scriptTarget(root, revertScript, args, m)
	case cliargs.CmdTill:
		return d.tillTarget(args, m)
	default:
		return Target{}, fmt.Errorf("unknown command %q", subcommand)
	}
}

// Dispatch resolves the target and replaces the process image. On
// success it never returns.
func (d *Dispatcher) Dispatch(subcommand string, args []string, root string, m *env.Map) error {
	target, err := d.Resolve(subcommand, args, root, m)
	if err != nil {
		return err
	}

	d.logger().Debug("dispatching", "path", target.Path, "argv", target.Argv)

	execer := d.Execer
	if execer == nil {
		execer = sysExecer{}
	}
	if err := execer.Exec(target); err != nil {
		return fmt.Errorf("failed to exec %s: %w", target.Path, err)
	}
	return nil
}

func (d *Dispatcher) scriptTarget(root, script string, args []string, m *env.Map) (Target, error) {
	interp := d.Interpreter
	if interp == "" {
		interp = DefaultInterpreter
	}
	interpPath, err := exec.LookPath(interp)
	if err != nil {
		return Target{}, fmt.Errorf("interpreter %q not found: %w", interp, err)
	}

	scriptPath := filepath.Join(root, ScriptsDir, script)
	if _, err := os.Stat(scriptPath); err != nil {
		return Target{}, fmt.Errorf("command script missing: %s: %w", scriptPath, err)
	}

	argv := append([]string{interpPath, scriptPath}, args...)
	return Target{Path: interpPath, Argv: argv, Env: m.Environ()}, nil
}

func (d *Dispatcher) tillTarget(args []string, m *env.Map) (Target, error) {
	bin := d.TillBinary
	if bin == "" {
		home := d.HomeDir
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return Target{}, err
			}
		}
		bin = filepath.Join(home, "projects", "github", "till", "till")
	}

	if _, err := os.Stat(bin); err != nil {
		return Target{}, fmt.Errorf("till is not installed at %s: %w", bin, err)
	}

	argv := append([]string{bin}, args...)
	return Target{Path: bin, Argv: argv, Env: m.Environ()}, nil
}

func (d *Dispatcher) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}
