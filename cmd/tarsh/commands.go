// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// commandReference is the in-session command reference shown by
// `tarsh commands`, rendered with glamour.
const commandReference = `
# In-session commands

All paths are interpreted inside the extracted archive. Absolute paths
are rooted at the virtual root, and ` + "`..`" + ` can never climb above it.

## ls [-R] [path]

List a directory (default: the current one). Directory entries get a
trailing ` + "`/`" + `. With ` + "`-R`" + `, subdirectories are listed recursively, each
preceded by its path header. Listing a file prints just its name.

## cd <directory>

Change the current directory. Attempts to leave the virtual root are
refused with ` + "`permission denied`" + `.

## rmdir [-p] [-v] <directory>

Remove an empty directory. ` + "`-v`" + ` reports each removal; ` + "`-p`" + ` also removes
parent directories that become empty, walking upward until one is not.

## tail [-n <number_of_lines>] <file>

Print the last lines of a regular file (default line count comes from
the configuration, normally 10).

## exit

End the session: the JSON session log is written and the extracted
directory is removed. Ctrl+D and Ctrl+C do the same.
`

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show the in-session command reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		rendered, err := glamour.Render(commandReference, cfg.UI.ColorScheme.String())
		if err != nil {
			// Fall back to the raw markdown rather than failing the command.
			fmt.Print(commandReference)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}
