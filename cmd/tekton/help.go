// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"tekton-cli/internal/env"
	"tekton-cli/internal/envjs"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tekton [path-or-alias] [flags] <command> [args...]")
	fmt.Fprintln(w, "Run 'tekton help' for details.")
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, TitleStyle.Render("tekton")+SubtitleStyle.Render(" - Tekton platform launcher"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolves which Tekton installation to operate on, merges its")
	fmt.Fprintln(w, "environment files and hands control to the platform command.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Usage:"))
	fmt.Fprintln(w, "  tekton [path-or-alias] [flags] <command> [path-or-alias] [args...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Commands:"))
	fmt.Fprintf(w, "  %s         Show component and CI status\n", CmdStyle.Render("status"))
	fmt.Fprintf(w, "  %s  Start the platform components\n", CmdStyle.Render("start|launch"))
	fmt.Fprintf(w, "  %s     Stop the platform components\n", CmdStyle.Render("stop|kill"))
	fmt.Fprintf(w, "  %s         Revert the installation to its last good state\n", CmdStyle.Render("revert"))
	fmt.Fprintf(w, "  %s           Forward the remaining arguments to till\n", CmdStyle.Render("till"))
	fmt.Fprintf(w, "  %s           Show this help\n", CmdStyle.Render("help"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Flags:"))
	fmt.Fprintln(w, "  -c, --coder <letter>   select the coder-<letter> installation")
	fmt.Fprintln(w, "  -d, --debug            enable debug output and TEKTON_DEBUG")
	fmt.Fprintln(w, "  -h, --help             show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Installation selection:"))
	fmt.Fprintln(w, "  An explicit path must contain a "+env.PlatformEnvName+" file. A bare name")
	fmt.Fprintln(w, "  is looked up in the till registry. With neither, the working")
	fmt.Fprintln(w, "  directory, TEKTON_ROOT, the registry 'primary' entry and a")
	fmt.Fprintln(w, "  ../Tekton sibling are tried in that order.")
}

// writeEnvJS regenerates the Hephaestus artifact from the merged
// environment.
func writeEnvJS(root string, merged *env.Map, deps *runDeps) error {
	return envjs.WriteFile(root, merged, deps.now())
}
