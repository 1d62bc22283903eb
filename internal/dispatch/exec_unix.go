// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dispatch

import "golang.org/x/sys/unix"

// sysExecer replaces the process image via execve.
type sysExecer struct{}

func (sysExecer) Exec(t Target) error {
	return unix.Exec(t.Path, t.Argv, t.Env)
}
