// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorSchemeIsValid(t *testing.T) {
	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if valid, errs := cs.IsValid(); !valid || len(errs) != 0 {
			t.Errorf("IsValid(%q) = %v, %v, want true, nil", cs, valid, errs)
		}
	}

	valid, errs := ColorScheme("neon").IsValid()
	if valid {
		t.Error("IsValid(\"neon\") = true, want false")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("IsValid(\"neon\") errs = %v, want InvalidColorSchemeError", errs)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig().IsValid() = false: %v", errs)
	}
	if cfg.Shell.DefaultTailLines != DefaultTailLines {
		t.Errorf("default tail lines = %d, want %d", cfg.Shell.DefaultTailLines, DefaultTailLines)
	}
	if cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("default serve host = %q, want loopback", cfg.Serve.Host)
	}
}

func TestConfigIsValidCollectsFieldErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.ColorScheme = "neon"
	cfg.Shell.DefaultTailLines = 0
	cfg.Serve.Port = 70000

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("IsValid() = true, want false")
	}
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want a single wrapping error", len(errs))
	}

	var invalidErr *InvalidConfigError
	if !errors.As(errs[0], &invalidErr) {
		t.Fatalf("errs[0] = %T, want *InvalidConfigError", errs[0])
	}
	if len(invalidErr.FieldErrors) != 3 {
		t.Errorf("field errors = %d, want 3", len(invalidErr.FieldErrors))
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("errors.Is(err, ErrInvalidConfig) = false")
	}

	var sawScheme, sawTail, sawPort bool
	for _, fe := range invalidErr.FieldErrors {
		switch {
		case errors.Is(fe, ErrInvalidColorScheme):
			sawScheme = true
		case errors.Is(fe, ErrInvalidTailLines):
			sawTail = true
		case errors.Is(fe, ErrInvalidListenPort):
			sawPort = true
		}
	}
	if !sawScheme || !sawTail || !sawPort {
		t.Errorf("field errors missing a class: scheme=%v tail=%v port=%v", sawScheme, sawTail, sawPort)
	}
}
