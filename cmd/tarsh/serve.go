// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"tarsh-cli/internal/issue"
	"tarsh-cli/internal/sshserver"

	"github.com/spf13/cobra"
)

var (
	serveHost    string
	servePort    int
	serveArchive string
	serveLogDir  string
	serveHostKey string
	serveMetrics string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the tar shell over SSH",
		Long: `Serve the tar shell over SSH.

Every connection gets its own extraction of the archive and its own JSON
session log under --log-dir, named session-<n>-<user>.json. There is no
authentication: any username is accepted, which is why the server binds
to loopback unless told otherwise.

With --metrics-addr set, prometheus metrics are exposed on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "address to bind to (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", -1, "port to listen on, 0 auto-selects (default from config)")
	serveCmd.Flags().StringVarP(&serveArchive, "archive", "a", "", "tar archive (plain or gzip) extracted per session")
	serveCmd.Flags().StringVar(&serveLogDir, "log-dir", "", "directory receiving one JSON session log per connection")
	serveCmd.Flags().StringVar(&serveHostKey, "host-key", "", "SSH host key path (generated if empty)")
	serveCmd.Flags().StringVar(&serveMetrics, "metrics-addr", "", "expose prometheus metrics on this address (default from config)")

	_ = serveCmd.MarkFlagRequired("archive")
	_ = serveCmd.MarkFlagRequired("log-dir")
}

func runServe(cmd *cobra.Command) error {
	logger := newLogger()

	host := cfg.Serve.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Serve.Port
	if servePort >= 0 {
		port = servePort
	}
	metricsAddr := cfg.Serve.MetricsAddr
	if serveMetrics != "" {
		metricsAddr = serveMetrics
	}

	if err := os.MkdirAll(serveLogDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	srv, err := sshserver.New(sshserver.Config{
		Host:             host,
		Port:             port,
		HostKeyPath:      serveHostKey,
		MetricsAddr:      metricsAddr,
		ArchivePath:      serveArchive,
		LogDir:           serveLogDir,
		ScratchDir:       cfg.Shell.ScratchDir,
		DefaultTailLines: cfg.Shell.DefaultTailLines,
	}, logger)
	if err != nil {
		return issue.WrapWithOperation(err, "configuring SSH server")
	}

	ctx := cmd.Context()
	if err := srv.Start(ctx); err != nil {
		if rendered, renderErr := issue.Get(issue.ServerStartFailedId).Render(); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return issue.WrapWithOperation(err, "starting SSH server")
	}

	fmt.Printf("%s Serving %s on %s\n", SuccessStyle.Render("✓"), serveArchive, CmdStyle.Render(srv.Addr()))
	fmt.Println(SubtitleStyle.Render("Press Ctrl+C to stop."))

	// Block until the interrupt-notified context is cancelled, then shut
	// down gracefully.
	<-ctx.Done()
	return srv.Stop()
}
