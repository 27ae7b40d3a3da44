// SPDX-License-Identifier: EPL-2.0

package testutil

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

// TarEntry describes one entry of a test fixture archive. A name ending in
// "/" produces a directory entry; anything else a regular file with Data
// as its content.
type TarEntry struct {
	Name string
	Data string
}

// MustWriteTar writes a tar archive containing the given entries to a file
// under dir and returns its path. Parent directories of file entries are
// not synthesized; list them explicitly when the extraction layout matters.
func MustWriteTar(t testing.TB, dir string, entries []TarEntry) string {
	t.Helper()
	path := filepath.Join(dir, "fixture.tar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive %s: %v", path, err)
	}
	writeTarEntries(t, f, entries)
	MustClose(t, f)
	return path
}

// MustWriteTarGz is MustWriteTar with a gzip-compressed stream.
func MustWriteTarGz(t testing.TB, dir string, entries []TarEntry) string {
	t.Helper()
	path := filepath.Join(dir, "fixture.tar.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive %s: %v", path, err)
	}
	gz := gzip.NewWriter(f)
	writeTarEntries(t, gz, entries)
	MustClose(t, gz)
	MustClose(t, f)
	return path
}

// StandardFixture is the archive layout shared by most shell tests:
// a three-line file, an empty directory, and a non-empty directory.
func StandardFixture() []TarEntry {
	return []TarEntry{
		{Name: "file1.txt", Data: "Line 1\nLine 2\nLine 3\n"},
		{Name: "empty_dir/"},
		{Name: "non_empty_dir/"},
		{Name: "non_empty_dir/file2.txt", Data: "Another file"},
	}
}

func writeTarEntries(t testing.TB, w io.Writer, entries []TarEntry) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, e := range entries {
		hdr := &tar.Header{
			Name:    e.Name,
			Mode:    0o644,
			Size:    int64(len(e.Data)),
			ModTime: time.Now(),
		}
		if strings.HasSuffix(e.Name, "/") {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
			hdr.Size = 0
		} else {
			hdr.Typeflag = tar.TypeReg
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("failed to write tar header %s: %v", e.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Data)); err != nil {
				t.Fatalf("failed to write tar data %s: %v", e.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
}

// MustListDir returns the sorted entry names of a directory.
// The test fails immediately if the directory cannot be read.
func MustListDir(t testing.TB, dir string) []string {
	t.Helper()
	des, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read directory %s: %v", dir, err)
	}
	names := make([]string, 0, len(des))
	for _, de := range des {
		names = append(names, de.Name())
	}
	sort.Strings(names)
	return names
}
