// SPDX-License-Identifier: MPL-2.0

package cliargs

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		argv    []string
		want    ParsedCommand
		wantErr bool
	}{
		{
			name: "no args defaults to help",
			argv: nil,
			want: ParsedCommand{Subcommand: CmdHelp, Args: []string{}},
		},
		{
			name: "bare subcommand",
			argv: []string{"status"},
			want: ParsedCommand{Subcommand: CmdStatus, Args: []string{}},
		},
		{
			name: "selector before subcommand",
			argv: []string{"myalias", "status"},
			want: ParsedCommand{Subcommand: CmdStatus, RootSelector: "myalias", Args: []string{}},
		},
		{
			name: "selector after subcommand is consumed",
			argv: []string{"start", "myalias", "--verbose"},
			want: ParsedCommand{Subcommand: CmdStart, RootSelector: "myalias", Args: []string{"--verbose"}},
		},
		{
			name: "selector before subcommand wins over later tokens",
			argv: []string{"myalias", "start", "other", "--verbose"},
			want: ParsedCommand{Subcommand: CmdStart, RootSelector: "myalias", Args: []string{"other", "--verbose"}},
		},
		{
			name: "flags after subcommand pass through unparsed",
			argv: []string{"stop", "--debug", "-h", "extra"},
			want: ParsedCommand{Subcommand: CmdStop, RootSelector: "extra", Args: []string{"--debug", "-h"}},
		},
		{
			name: "global debug flag",
			argv: []string{"-d", "status"},
			want: ParsedCommand{Subcommand: CmdStatus, Debug: true, Args: []string{}},
		},
		{
			name: "coder flag",
			argv: []string{"-c", "d", "status"},
			want: ParsedCommand{Subcommand: CmdStatus, CoderLetter: "d", Args: []string{}},
		},
		{
			name: "long coder flag with selector",
			argv: []string{"--coder", "a", "--debug", "launch"},
			want: ParsedCommand{Subcommand: CmdLaunch, CoderLetter: "a", Debug: true, Args: []string{}},
		},
		{
			name: "help short-circuits everything",
			argv: []string{"-d", "-h", "status", "whatever"},
			want: ParsedCommand{Subcommand: CmdHelp, Debug: true, Args: []string{}},
		},
		{
			name: "help as subcommand",
			argv: []string{"help"},
			want: ParsedCommand{Subcommand: CmdHelp, Args: []string{}},
		},
		{
			name: "till keeps its arguments verbatim",
			argv: []string{"till", "install", "--dry-run"},
			want: ParsedCommand{Subcommand: CmdTill, Args: []string{"install", "--dry-run"}},
		},
		{
			name: "selector before till still works",
			argv: []string{"myalias", "till", "sync"},
			want: ParsedCommand{Subcommand: CmdTill, RootSelector: "myalias", Args: []string{"sync"}},
		},
		{
			name: "path selector",
			argv: []string{"/opt/Tekton", "status"},
			want: ParsedCommand{Subcommand: CmdStatus, RootSelector: "/opt/Tekton", Args: []string{}},
		},
		{
			name:    "two selectors before subcommand",
			argv:    []string{"alias1", "alias2", "status"},
			wantErr: true,
		},
		{
			name:    "unknown global flag",
			argv:    []string{"--verbose", "status"},
			wantErr: true,
		},
		{
			name:    "dangling coder flag",
			argv:    []string{"-c"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.argv)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%v) succeeded, want error", tt.argv)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%v) error: %v", tt.argv, err)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("Parse(%v) = %+v, want %+v", tt.argv, *got, tt.want)
			}
		})
	}
}

func TestParseSelectorNeverDuplicated(t *testing.T) {
	t.Parallel()

	got, err := Parse([]string{"start", "myalias", "myalias"})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.RootSelector != "myalias" {
		t.Fatalf("RootSelector = %q, want %q", got.RootSelector, "myalias")
	}
	// The first occurrence is consumed as the selector; the second is an
	// ordinary argument. The consumed token must not be duplicated.
	if len(got.Args) != 1 || got.Args[0] != "myalias" {
		t.Errorf("Args = %v, want exactly one remaining token", got.Args)
	}
}

func TestIsSubcommand(t *testing.T) {
	t.Parallel()

	for _, name := range []string{CmdStatus, CmdStart, CmdLaunch, CmdStop, CmdKill, CmdRevert, CmdTill, CmdHelp} {
		if !IsSubcommand(name) {
			t.Errorf("IsSubcommand(%q) = false", name)
		}
	}
	for _, name := range []string{"", "restart", "STATUS", "-h"} {
		if IsSubcommand(name) {
			t.Errorf("IsSubcommand(%q) = true", name)
		}
	}
}
