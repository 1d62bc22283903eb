// SPDX-License-Identifier: MPL-2.0

package main

import cmd "tekton-cli/cmd/tekton"

func main() {
	cmd.Execute()
}
