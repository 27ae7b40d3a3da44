// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"tarsh-cli/internal/config"
	"tarsh-cli/internal/issue"

	"github.com/spf13/cobra"
)

// configCmd is the `tarsh config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tarsh configuration",
	Long: `Manage tarsh configuration.

Configuration is stored in:
  - Linux: ~/.config/tarsh/config.cue
  - macOS: ~/Library/Application Support/tarsh/config.cue
  - Windows: %APPDATA%\tarsh\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig() error {
	loaded, err := config.Load()
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render(); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgPath, pathErr := config.ConfigFilePath()
	if pathErr == nil && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(loaded.UI.ColorScheme.String()))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", loaded.UI.Verbose)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("shell"))
	fmt.Printf("  default_tail_lines: %s\n", valueStyle.Render(fmt.Sprintf("%d", loaded.Shell.DefaultTailLines)))
	if loaded.Shell.ScratchDir == "" {
		fmt.Printf("  scratch_dir: %s\n", SubtitleStyle.Render("(system temp)"))
	} else {
		fmt.Printf("  scratch_dir: %s\n", valueStyle.Render(loaded.Shell.ScratchDir))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("serve"))
	fmt.Printf("  host: %s\n", valueStyle.Render(loaded.Serve.Host))
	fmt.Printf("  port: %s\n", valueStyle.Render(fmt.Sprintf("%d", loaded.Serve.Port)))
	if loaded.Serve.MetricsAddr == "" {
		fmt.Printf("  metrics_addr: %s\n", SubtitleStyle.Render("(disabled)"))
	} else {
		fmt.Printf("  metrics_addr: %s\n", valueStyle.Render(loaded.Serve.MetricsAddr))
	}

	return nil
}

func initConfigFile() error {
	path, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", cfgPath)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
