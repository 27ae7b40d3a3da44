// SPDX-License-Identifier: MPL-2.0

package vfs_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tarsh-cli/internal/testutil"
	"tarsh-cli/internal/vfs"
)

func TestNewExtractsArchive(t *testing.T) {
	dir := t.TempDir()
	archive := testutil.MustWriteTar(t, dir, testutil.StandardFixture())

	ws, err := vfs.New(archive, dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ws.Cleanup() //nolint:errcheck

	got := testutil.MustListDir(t, ws.Root())
	want := []string{"empty_dir", "file1.txt", "non_empty_dir"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extracted root = %v, want %v", got, want)
	}

	data, err := os.ReadFile(filepath.Join(ws.Root(), "file1.txt"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(data) != "Line 1\nLine 2\nLine 3\n" {
		t.Errorf("file1.txt content = %q", string(data))
	}

	nested, err := os.ReadFile(filepath.Join(ws.Root(), "non_empty_dir", "file2.txt"))
	if err != nil {
		t.Fatalf("reading nested file: %v", err)
	}
	if string(nested) != "Another file" {
		t.Errorf("file2.txt content = %q", string(nested))
	}
}

func TestNewGzipArchive(t *testing.T) {
	dir := t.TempDir()
	archive := testutil.MustWriteTarGz(t, dir, testutil.StandardFixture())

	ws, err := vfs.New(archive, dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ws.Cleanup() //nolint:errcheck

	got := testutil.MustListDir(t, ws.Root())
	want := []string{"empty_dir", "file1.txt", "non_empty_dir"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extracted root = %v, want %v", got, want)
	}
}

func TestNewCreatesMissingParents(t *testing.T) {
	dir := t.TempDir()
	// File entry without a preceding directory entry for its parent.
	archive := testutil.MustWriteTar(t, dir, []testutil.TarEntry{
		{Name: "deep/nested/file.txt", Data: "x"},
	})

	ws, err := vfs.New(archive, dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ws.Cleanup() //nolint:errcheck

	if _, err := os.Stat(filepath.Join(ws.Root(), "deep", "nested", "file.txt")); err != nil {
		t.Errorf("nested file missing after extraction: %v", err)
	}
}

func TestNewMissingArchive(t *testing.T) {
	dir := t.TempDir()

	_, err := vfs.New(filepath.Join(dir, "nope.tar"), dir)
	if err == nil {
		t.Fatal("New() error = nil, want error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("New() error = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestNewRejectsEscapingEntry(t *testing.T) {
	dir := t.TempDir()
	archive := testutil.MustWriteTar(t, dir, []testutil.TarEntry{
		{Name: "../evil.txt", Data: "pwned"},
	})

	_, err := vfs.New(archive, dir)
	if err == nil {
		t.Fatal("New() error = nil, want escape error")
	}
	if !errors.Is(err, vfs.ErrArchiveEntryEscape) {
		t.Errorf("New() error = %v, want ErrArchiveEntryEscape in chain", err)
	}

	var escErr *vfs.ArchiveEntryEscapeError
	if !errors.As(err, &escErr) {
		t.Fatalf("New() error = %v, want *ArchiveEntryEscapeError", err)
	}
	if escErr.Name != "../evil.txt" {
		t.Errorf("escaping entry name = %q, want %q", escErr.Name, "../evil.txt")
	}

	if _, statErr := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(statErr) {
		t.Error("escaping entry was written outside the extraction root")
	}
}

func TestCleanupIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	archive := testutil.MustWriteTar(t, dir, testutil.StandardFixture())

	ws, err := vfs.New(archive, dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	removed, err := ws.Cleanup()
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if !removed {
		t.Error("first Cleanup() removed = false, want true")
	}
	if _, err := os.Stat(ws.Root()); !os.IsNotExist(err) {
		t.Error("extraction directory still exists after Cleanup")
	}

	removed, err = ws.Cleanup()
	if err != nil {
		t.Fatalf("second Cleanup() error = %v", err)
	}
	if removed {
		t.Error("second Cleanup() removed = true, want false")
	}
}
