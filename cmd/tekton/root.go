// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the tekton launcher CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tekton-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// rootCmd is the base command. Flag parsing is disabled because the
	// launcher grammar puts an optional installation selector before the
	// subcommand and forwards post-subcommand flags verbatim; the split
	// happens in internal/cliargs instead.
	// verbose widens error output to the full cause chain; set by run
	// from the debug flag and the launcher settings.
	verbose bool

	rootCmd = &cobra.Command{
		Use:                "tekton [path-or-alias] [flags] <command> [args...]",
		Short:              "Resolve a Tekton installation and dispatch a platform command",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args, defaultRunDeps())
		},
	}
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the launcher. It is called by main.main() and exits the
// process on failure.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(displayError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// displayError renders launcher errors once, hints included, instead of
// fang's default presentation.
func displayError(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+issue.Display(err, verbose))
}
