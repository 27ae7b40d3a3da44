// SPDX-License-Identifier: MPL-2.0

// tarsh opens an interactive, confined shell over the contents of a tar
// archive, locally or over SSH.
package main

import cmd "tarsh-cli/cmd/tarsh"

func main() {
	cmd.Execute()
}
