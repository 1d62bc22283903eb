// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dispatch

import "fmt"

// Process-image replacement has no equivalent on this platform.
type sysExecer struct{}

func (sysExecer) Exec(t Target) error {
	return fmt.Errorf("exec is not supported on this platform")
}
