// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"tekton-cli/internal/cliargs"
	"tekton-cli/internal/config"
	"tekton-cli/internal/dispatch"
	"tekton-cli/internal/env"
	"tekton-cli/internal/install"
	"tekton-cli/internal/issue"
	"tekton-cli/internal/registry"

	"github.com/charmbracelet/log"
)

// runDeps holds everything run needs from the outside world so tests can
// substitute all of it, the terminal exec included.
type runDeps struct {
	settings config.Settings
	registry install.Aliases
	execer   dispatch.Execer
	environ  []string
	homeDir  string
	getwd    func() (string, error)
	stdout   io.Writer
	stderr   io.Writer
	now      func() time.Time
	logger   *log.Logger
}

// defaultRunDeps wires the production dependencies.
func defaultRunDeps() *runDeps {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "tekton"})

	settings, err := config.Load(config.LoadOptions{})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		settings = config.DefaultSettings()
	}

	return &runDeps{
		settings: settings,
		registry: &registry.Registry{Logger: logger},
		environ:  os.Environ(),
		getwd:    os.Getwd,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		now:      time.Now,
		logger:   logger,
	}
}

// run is the launcher pipeline: split the argument vector, resolve the
// installation root, merge the env cascade, regenerate the UI artifact
// and hand the process over to the target command.
func run(argv []string, deps *runDeps) error {
	pc, err := cliargs.Parse(argv)
	if err != nil {
		printUsage(deps.stderr)
		return &ExitError{Code: 1, Err: err}
	}

	if pc.Debug {
		deps.logger.SetLevel(log.DebugLevel)
	}
	verbose = deps.settings.Verbose || pc.Debug

	if pc.Subcommand == cliargs.CmdHelp {
		printHelp(deps.stdout)
		return nil
	}

	resolver := &install.Resolver{
		Registry: deps.registry,
		Getwd:    deps.getwd,
		Logger:   deps.logger,
	}
	root, err := resolver.Resolve(pc.RootSelector, pc.CoderLetter)
	if err != nil {
		rerr := issue.New("resolve Tekton installation").
			WithHint("Pass an installation path or registry alias before the command").
			WithHint("Run 'tekton till status' to list registered installations").
			Wrap(err)
		return &ExitError{Code: 1, Err: rerr}
	}

	merged, err := env.Cascade(root, env.CascadeOptions{
		Environ: deps.environ,
		HomeDir: deps.homeDir,
		Debug:   pc.Debug,
		Logger:  deps.logger,
	})
	if err != nil {
		cerr := issue.New("load environment cascade").WithResource(root).Wrap(err)
		return &ExitError{Code: 1, Err: cerr}
	}

	// The UI artifact is a best-effort side product; a failed write must
	// not block dispatch.
	if err := writeEnvJS(root, merged, deps); err != nil {
		deps.logger.Warn("could not write Hephaestus env.js", "err", err)
	}

	dispatcher := &dispatch.Dispatcher{
		Interpreter: deps.settings.Interpreter,
		TillBinary:  deps.settings.TillBinary,
		HomeDir:     deps.homeDir,
		Execer:      deps.execer,
		Logger:      deps.logger,
	}
	if err := dispatcher.Dispatch(pc.Subcommand, pc.Args, root, merged); err != nil {
		derr := issue.New("dispatch command").WithResource(pc.Subcommand).Wrap(err)
		return &ExitError{Code: 1, Err: derr}
	}
	return nil
}
