// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultTailLines is the tail line count used when neither the config
	// file nor the -n option specifies one.
	DefaultTailLines = 10

	// DefaultServePort is the default SSH listen port for tarsh serve.
	DefaultServePort = 2222
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidTailLines is returned when shell.default_tail_lines is not positive.
	ErrInvalidTailLines = errors.New("invalid default tail lines")
	// ErrInvalidListenPort is returned when serve.port is outside 0-65535.
	ErrInvalidListenPort = errors.New("invalid listen port")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidTailLinesError is returned when shell.default_tail_lines is not
	// positive. It wraps ErrInvalidTailLines for errors.Is() compatibility.
	InvalidTailLinesError struct {
		Value int
	}

	// InvalidListenPortError is returned when serve.port is outside the
	// valid range. It wraps ErrInvalidListenPort for errors.Is() compatibility.
	InvalidListenPortError struct {
		Value int
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Shell configures in-session command behavior
		Shell ShellConfig `json:"shell" mapstructure:"shell"`
		// Serve configures the SSH serving mode
		Serve ServeConfig `json:"serve" mapstructure:"serve"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose diagnostic output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// ShellConfig configures in-session command behavior.
	ShellConfig struct {
		// DefaultTailLines is the line count tail uses without -n
		DefaultTailLines int `json:"default_tail_lines" mapstructure:"default_tail_lines"`
		// ScratchDir is the parent directory for extraction dirs ("" = system temp)
		ScratchDir string `json:"scratch_dir" mapstructure:"scratch_dir"`
	}

	// ServeConfig configures the SSH serving mode.
	ServeConfig struct {
		// Host is the address to bind to
		Host string `json:"host" mapstructure:"host"`
		// Port is the SSH listen port (0 = auto-select)
		Port int `json:"port" mapstructure:"port"`
		// MetricsAddr exposes prometheus metrics when non-empty
		MetricsAddr string `json:"metrics_addr" mapstructure:"metrics_addr"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface for InvalidTailLinesError.
func (e *InvalidTailLinesError) Error() string {
	return fmt.Sprintf("invalid default tail lines %d: must be positive", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidTailLinesError) Unwrap() error { return ErrInvalidTailLines }

// Error implements the error interface for InvalidListenPortError.
func (e *InvalidListenPortError) Error() string {
	return fmt.Sprintf("invalid listen port %d: must be between 0 and 65535", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidListenPortError) Unwrap() error { return ErrInvalidListenPort }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the Config has valid fields. It delegates to
// ColorScheme.IsValid() and range-checks the numeric fields; bool and
// free-form string fields need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Shell.DefaultTailLines <= 0 {
		errs = append(errs, &InvalidTailLinesError{Value: c.Shell.DefaultTailLines})
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		errs = append(errs, &InvalidListenPortError{Value: c.Serve.Port})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Shell: ShellConfig{
			DefaultTailLines: DefaultTailLines,
			ScratchDir:       "", // Will use os.TempDir() if empty
		},
		Serve: ServeConfig{
			Host:        "127.0.0.1",
			Port:        DefaultServePort,
			MetricsAddr: "",
		},
	}
}
