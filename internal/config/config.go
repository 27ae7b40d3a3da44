// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"tarsh-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "tarsh"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the tarsh configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of the config file that Load would read:
// the --config override when set, otherwise the file under ConfigDir.
// The file may not exist.
func ConfigFilePath() (string, error) {
	if configFileOverride != "" {
		return configFileOverride, nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the configuration: defaults, overlaid with the CUE config file
// when one exists. A missing file is not an error; a file that fails to
// parse or validate is.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("shell.default_tail_lines", defaults.Shell.DefaultTailLines)
	v.SetDefault("shell.scratch_dir", defaults.Shell.ScratchDir)
	v.SetDefault("serve.host", defaults.Serve.Host)
	v.SetDefault("serve.port", defaults.Serve.Port)
	v.SetDefault("serve.metrics_addr", defaults.Serve.MetricsAddr)

	// If a custom config file path is set via --config, use it exclusively.
	if configFileOverride != "" {
		if !fileExists(configFileOverride) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFileOverride).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'tarsh config init' to create a default config file").
				Wrap(fmt.Errorf("config file not found: %s", configFileOverride)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, configFileOverride); err != nil {
			return nil, wrapParseError(err, configFileOverride)
		}
	} else {
		cfgPath, err := ConfigFilePath()
		if err != nil {
			return nil, err
		}
		if fileExists(cfgPath) {
			if err := loadCUEIntoViper(v, cfgPath); err != nil {
				return nil, wrapParseError(err, cfgPath)
			}
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Run 'tarsh config show' to inspect the effective configuration").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, nil
}

func wrapParseError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'tarsh config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper. Config decodes to
// map[string]any (not a struct) so that viper keeps defaults for fields
// the file omits; validation uses Concrete(false) because all fields are
// optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("invalid CUE in %s: %w", path, userValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig creates a default config file if it doesn't exist.
// Returns the path of the file, created or pre-existing.
func CreateDefaultConfig() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil // File exists
	}

	cueContent := GenerateCUE(DefaultConfig())
	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// tarsh configuration file\n")
	sb.WriteString("// See https://github.com/tarsh-cli/tarsh for documentation.\n\n")

	sb.WriteString("ui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n\n")

	sb.WriteString("shell: {\n")
	sb.WriteString(fmt.Sprintf("\tdefault_tail_lines: %d\n", cfg.Shell.DefaultTailLines))
	if cfg.Shell.ScratchDir != "" {
		sb.WriteString(fmt.Sprintf("\tscratch_dir: %q\n", cfg.Shell.ScratchDir))
	}
	sb.WriteString("}\n\n")

	sb.WriteString("serve: {\n")
	sb.WriteString(fmt.Sprintf("\thost: %q\n", cfg.Serve.Host))
	sb.WriteString(fmt.Sprintf("\tport: %d\n", cfg.Serve.Port))
	if cfg.Serve.MetricsAddr != "" {
		sb.WriteString(fmt.Sprintf("\tmetrics_addr: %q\n", cfg.Serve.MetricsAddr))
	}
	sb.WriteString("}\n")

	return sb.String()
}
