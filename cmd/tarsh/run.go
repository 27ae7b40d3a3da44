// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"tarsh-cli/internal/issue"
	"tarsh-cli/internal/sessionlog"
	"tarsh-cli/internal/shell"
	"tarsh-cli/internal/vfs"

	"github.com/spf13/cobra"
)

var (
	runUsername string
	runArchive  string
	runLogFile  string
	runScript   string
	runTail     int

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Open an interactive shell over a tar archive",
		Long: `Open an interactive shell over a tar archive.

The archive is extracted into a temporary directory which becomes the
shell's virtual root; paths can never resolve outside it. Available
in-session commands: ls, cd, rmdir, tail, exit (see 'tarsh commands').

If --script is given, its commands run first, echoed behind the prompt,
before interactive input is read. Every command from either phase is
recorded to the JSON session log, which is written when the session
ends. The extracted directory is removed on the way out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd)
		},
	}
)

func init() {
	runCmd.Flags().StringVarP(&runUsername, "username", "u", "", "username shown in the prompt and recorded in the log")
	runCmd.Flags().StringVarP(&runArchive, "archive", "a", "", "tar archive (plain or gzip) to extract")
	runCmd.Flags().StringVarP(&runLogFile, "log-file", "l", "", "path of the JSON session log to write")
	runCmd.Flags().StringVarP(&runScript, "script", "s", "", "startup script executed before interactive input")
	runCmd.Flags().IntVar(&runTail, "tail-lines", 0, "default line count for tail (overrides config)")

	_ = runCmd.MarkFlagRequired("username")
	_ = runCmd.MarkFlagRequired("archive")
	_ = runCmd.MarkFlagRequired("log-file")
}

func runShell(cmd *cobra.Command) error {
	logger := newLogger()

	ws, err := vfs.New(runArchive, cfg.Shell.ScratchDir)
	if err != nil {
		id := issue.ArchiveExtractFailedId
		if errors.Is(err, fs.ErrNotExist) {
			id = issue.ArchiveNotFoundId
		}
		if rendered, renderErr := issue.Get(id).Render(); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return issue.NewErrorContext().
			WithOperation("preparing virtual filesystem").
			WithResource(runArchive).
			WithSuggestion("run 'tarsh commands' for the in-session command reference").
			Wrap(err).
			BuildError()
	}
	logger.Debug("workspace extracted", "root", ws.Root())

	tailLines := cfg.Shell.DefaultTailLines
	if runTail > 0 {
		tailLines = runTail
	}

	recorder := sessionlog.NewRecorder(runUsername, runLogFile)
	session := shell.NewSession(shell.Options{
		Username:         runUsername,
		Workspace:        ws,
		Recorder:         recorder,
		Out:              os.Stdout,
		DefaultTailLines: tailLines,
		Logger:           logger,
	})

	runner := shell.NewRunner(session, os.Stdin, runScript, logger)
	if err := runner.Run(cmd.Context()); err != nil {
		if rendered, renderErr := issue.Get(issue.SessionLogWriteFailedId).Render(); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return issue.WrapWithOperation(err, "finishing session")
	}
	return nil
}
