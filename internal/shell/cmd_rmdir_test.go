// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"os"
	"path/filepath"
	"testing"

	"tarsh-cli/internal/testutil"
)

func TestRmdirRemovesEmptyDirectory(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("rmdir empty_dir")
	if got := out.String(); got != "" {
		t.Errorf("rmdir empty_dir = %q, want no output", got)
	}
	if _, err := os.Stat(filepath.Join(s.ws.Root(), "empty_dir")); !os.IsNotExist(err) {
		t.Error("empty_dir still exists after rmdir")
	}
}

func TestRmdirVerbose(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("rmdir -v empty_dir")
	if got := out.String(); got != "Removed directory: empty_dir\n" {
		t.Errorf("rmdir -v empty_dir = %q", got)
	}
}

func TestRmdirNonEmptyDirectory(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("rmdir non_empty_dir")
	if got := out.String(); got != "rmdir: directory not empty: non_empty_dir\n" {
		t.Errorf("rmdir non_empty_dir = %q", got)
	}
	if _, err := os.Stat(filepath.Join(s.ws.Root(), "non_empty_dir")); err != nil {
		t.Error("non_empty_dir was removed despite being non-empty")
	}
}

func TestRmdirMissingDirectory(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("rmdir nope")
	if got := out.String(); got != "rmdir: no such file or directory: nope\n" {
		t.Errorf("rmdir nope = %q", got)
	}
}

func TestRmdirOnFile(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("rmdir file1.txt")
	if got := out.String(); got != "rmdir: file1.txt is not a directory\n" {
		t.Errorf("rmdir file1.txt = %q", got)
	}
}

func TestRmdirUsage(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("rmdir")
	if got := out.String(); got != "Usage: rmdir [-p] [-v] <directory>\n" {
		t.Errorf("rmdir = %q", got)
	}

	out.Reset()
	s.Dispatch("rmdir -v -p")
	if got := out.String(); got != "Usage: rmdir [-p] [-v] <directory>\n" {
		t.Errorf("rmdir -v -p = %q", got)
	}
}

func TestRmdirAboveRootDenied(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("rmdir ..")
	if got := out.String(); got != "rmdir: permission denied: ..\n" {
		t.Errorf("rmdir .. = %q", got)
	}
}

func TestRmdirParentsChain(t *testing.T) {
	s, out := newTestSession(t, []testutil.TarEntry{
		{Name: "keep.txt", Data: "stay"},
		{Name: "a/"},
		{Name: "a/b/"},
		{Name: "a/b/c/"},
	})

	s.Dispatch("rmdir -p -v a/b/c")
	want := "Removed directory: a/b/c\n" +
		"Removed parent directory: a/b\n" +
		"Removed parent directory: a\n"
	if got := out.String(); got != want {
		t.Errorf("rmdir -p -v a/b/c = %q, want %q", got, want)
	}

	if _, err := os.Stat(filepath.Join(s.ws.Root(), "a")); !os.IsNotExist(err) {
		t.Error("directory a still exists after parent walk")
	}
	if _, err := os.Stat(filepath.Join(s.ws.Root(), "keep.txt")); err != nil {
		t.Error("keep.txt was removed by the parent walk")
	}
}

func TestRmdirParentsStopsAtNonEmpty(t *testing.T) {
	s, out := newTestSession(t, []testutil.TarEntry{
		{Name: "a/"},
		{Name: "a/keep.txt", Data: "stay"},
		{Name: "a/b/"},
		{Name: "a/b/c/"},
	})

	s.Dispatch("rmdir -p -v a/b/c")
	want := "Removed directory: a/b/c\n" +
		"Removed parent directory: a/b\n"
	if got := out.String(); got != want {
		t.Errorf("rmdir -p -v a/b/c = %q, want %q", got, want)
	}

	if _, err := os.Stat(filepath.Join(s.ws.Root(), "a")); err != nil {
		t.Error("non-empty directory a was removed")
	}
}

// With nothing else in the archive, the upward walk may empty out and
// remove the extraction root itself.
func TestRmdirParentsCanEmptyRoot(t *testing.T) {
	s, _ := newTestSession(t, []testutil.TarEntry{
		{Name: "a/"},
		{Name: "a/b/"},
	})

	s.Dispatch("rmdir -p a/b")
	if _, err := os.Stat(s.ws.Root()); !os.IsNotExist(err) {
		t.Error("extraction root still exists after emptying walk")
	}
}

func TestRmdirFlagsInAnyPosition(t *testing.T) {
	s, out := newTestSession(t, testutil.StandardFixture())

	s.Dispatch("rmdir empty_dir -v")
	if got := out.String(); got != "Removed directory: empty_dir\n" {
		t.Errorf("rmdir empty_dir -v = %q", got)
	}
}
