// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"testing"

	"tarsh-cli/internal/testutil"
)

func TestCdIntoDirectoryAndBack(t *testing.T) {
	s, _ := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("cd non_empty_dir")
	if got := s.Cwd(); got != "non_empty_dir" {
		t.Errorf("Cwd() = %q, want %q", got, "non_empty_dir")
	}

	s.Dispatch("cd ..")
	if got := s.Cwd(); got != "." {
		t.Errorf("Cwd() after cd .. = %q, want %q", got, ".")
	}
}

func TestCdAbsolutePath(t *testing.T) {
	s, _ := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("cd empty_dir")
	s.Dispatch("cd /non_empty_dir")
	if got := s.Cwd(); got != "non_empty_dir" {
		t.Errorf("Cwd() = %q, want %q", got, "non_empty_dir")
	}

	s.Dispatch("cd /")
	if got := s.Cwd(); got != "." {
		t.Errorf("Cwd() after cd / = %q, want %q", got, ".")
	}
}

func TestCdUsage(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("cd")
	if got := out.String(); got != "Usage: cd <directory>\n" {
		t.Errorf("cd = %q", got)
	}
}

func TestCdMissingDirectory(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("cd nope")
	if got := out.String(); got != "cd: no such file or directory: nope\n" {
		t.Errorf("cd nope = %q", got)
	}
	if got := s.Cwd(); got != "." {
		t.Errorf("Cwd() after failed cd = %q, want %q", got, ".")
	}
}

func TestCdIntoFileFails(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("cd file1.txt")
	if got := out.String(); got != "cd: no such file or directory: file1.txt\n" {
		t.Errorf("cd file1.txt = %q", got)
	}
}

func TestCdAboveRootDenied(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	for _, target := range []string{"..", "../..", "/.."} {
		out.Reset()
		s.Dispatch("cd " + target)
		want := "cd: permission denied: " + target + "\n"
		if got := out.String(); got != want {
			t.Errorf("cd %s = %q, want %q", target, got, want)
		}
		if got := s.Cwd(); got != "." {
			t.Errorf("Cwd() after cd %s = %q, want %q", target, got, ".")
		}
	}
}

// From a subdirectory, ".." that lands exactly on the root is allowed;
// only paths that would climb past it are denied.
func TestCdDotDotFromSubdirectory(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("cd non_empty_dir")
	out.Reset()
	s.Dispatch("cd ../..")
	if got := out.String(); got != "cd: permission denied: ../..\n" {
		t.Errorf("cd ../.. = %q", got)
	}
	if got := s.Cwd(); got != "non_empty_dir" {
		t.Errorf("Cwd() = %q, want unchanged %q", got, "non_empty_dir")
	}
}
