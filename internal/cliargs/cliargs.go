// SPDX-License-Identifier: MPL-2.0

// Package cliargs splits the launcher argument vector into global options,
// an optional installation selector, a subcommand and its pass-through
// arguments.
//
// The grammar is deliberately positional:
//
//	tekton [path-or-alias] [global-flags] <subcommand> [path-or-alias] [args...]
//
// Global flags are only recognized before the subcommand; everything after
// the subcommand belongs to the subcommand itself and is forwarded
// verbatim, except for a single selector token when none was seen earlier.
// Cobra's model cannot express that, so the split happens here and the
// command layer consumes the result.
package cliargs

import "fmt"

// Subcommand names form a closed set; anything else before the subcommand
// position is a selector token, anything else at the subcommand position
// is an error.
const (
	CmdStatus = "status"
	CmdStart  = "start"
	CmdLaunch = "launch"
	CmdStop   = "stop"
	CmdKill   = "kill"
	CmdRevert = "revert"
	CmdTill   = "till"
	CmdHelp   = "help"
)

// ParsedCommand is the result of splitting an argument vector.
type ParsedCommand struct {
	// Subcommand is one of the Cmd* constants; defaults to CmdHelp when
	// the vector names none.
	Subcommand string
	// RootSelector is the path-or-alias token consumed from the vector,
	// if any. It never also appears in Args.
	RootSelector string
	// CoderLetter is the value of the legacy -c/--coder selector.
	CoderLetter string
	// Debug is set by -d/--debug.
	Debug bool
	// Args are the subcommand's own arguments, unparsed and in order.
	Args []string
}

// IsSubcommand reports whether token names a recognized subcommand.
func IsSubcommand(token string) bool {
	switch token {
	case CmdStatus, CmdStart, CmdLaunch, CmdStop, CmdKill, CmdRevert, CmdTill, CmdHelp:
		return true
	}
	return false
}

// Parse splits argv (without the program name) into a ParsedCommand.
//
// -h/--help anywhere in the global-flag region short-circuits the whole
// parse to the help subcommand. An unknown flag or a second selector
// token in the global region is a usage error.
func Parse(argv []string) (*ParsedCommand, error) {
	pc := &ParsedCommand{Subcommand: CmdHelp, Args: []string{}}

	i := 0
	for i < len(argv) {
		token := argv[i]

		switch token {
		case "-h", "--help":
			pc.Subcommand = CmdHelp
			pc.Args = []string{}
			return pc, nil
		case "-d", "--debug":
			pc.Debug = true
			i++
			continue
		case "-c", "--coder":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("flag %s requires a coder letter", token)
			}
			pc.CoderLetter = argv[i+1]
			i += 2
			continue
		}

		if len(token) > 0 && token[0] == '-' {
			return nil, fmt.Errorf("unknown option %q", token)
		}

		if IsSubcommand(token) {
			pc.Subcommand = token
			if token == CmdTill {
				// Pass-through arguments are forwarded verbatim; till owns
				// every remaining token, selectors included.
				pc.Args = append([]string{}, argv[i+1:]...)
			} else {
				pc.Args = splitTail(pc, argv[i+1:])
			}
			return pc, nil
		}

		if pc.RootSelector != "" {
			return nil, fmt.Errorf("unexpected argument %q (installation already selected as %q)",
				token, pc.RootSelector)
		}
		pc.RootSelector = token
		i++
	}

	return pc, nil
}

// splitTail collects the post-subcommand arguments. Flags and subcommand
// names pass through untouched; the first plain token is consumed as the
// selector when the global region supplied none.
func splitTail(pc *ParsedCommand, tail []string) []string {
	args := make([]string, 0, len(tail))
	for _, token := range tail {
		if pc.RootSelector == "" && len(token) > 0 && token[0] != '-' && !IsSubcommand(token) {
			pc.RootSelector = token
			continue
		}
		args = append(args, token)
	}
	return args
}
