// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrArchiveEntryEscape is the sentinel error wrapped by ArchiveEntryEscapeError.
var ErrArchiveEntryEscape = errors.New("archive entry escapes extraction root")

// ArchiveEntryEscapeError is returned when a tar entry would be written
// outside the extraction root (e.g. a name with ".." segments).
// It wraps ErrArchiveEntryEscape for errors.Is() compatibility.
type ArchiveEntryEscapeError struct {
	Name string
}

// Error implements the error interface for ArchiveEntryEscapeError.
func (e *ArchiveEntryEscapeError) Error() string {
	return fmt.Sprintf("invalid path in archive: %s", e.Name)
}

// Unwrap returns ErrArchiveEntryEscape for errors.Is() compatibility.
func (e *ArchiveEntryEscapeError) Unwrap() error { return ErrArchiveEntryEscape }

// Workspace is the extraction directory backing one shell session.
// It is a process-owned scoped resource: created once, exclusively owned
// by the session, and released with Cleanup on every exit path.
type Workspace struct {
	root string
}

// New creates a scratch directory under parent (the system temp directory
// when parent is empty) and populates it from the tar archive at
// archivePath. Plain and gzip-compressed tar streams are both accepted;
// the compression is detected from the stream, not the file name.
// On any extraction failure the scratch directory is removed before
// returning the error.
func New(archivePath, parent string) (*Workspace, error) {
	if parent == "" {
		parent = os.TempDir()
	}

	root, err := os.MkdirTemp(parent, "tarsh-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}

	w := &Workspace{root: root}
	if err := w.populate(archivePath); err != nil {
		_ = os.RemoveAll(root) // Best-effort cleanup on error
		return nil, err
	}
	return w, nil
}

// Root returns the absolute real path of the extraction directory.
func (w *Workspace) Root() string { return w.root }

// Cleanup removes the extraction directory recursively. It is idempotent:
// a directory that is already gone reports removed=false and no error.
func (w *Workspace) Cleanup() (removed bool, err error) {
	if _, err := os.Stat(w.root); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat extraction directory: %w", err)
	}
	if err := os.RemoveAll(w.root); err != nil {
		return false, fmt.Errorf("failed to remove extraction directory: %w", err)
	}
	return true, nil
}

// populate extracts the archive into the workspace root.
func (w *Workspace) populate(archivePath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var src io.Reader = br

	// gzip magic: 0x1f 0x8b
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("failed to read gzip stream: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	tr := tar.NewReader(src)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}
		if err := w.extractEntry(hdr, tr); err != nil {
			return err
		}
	}
}

// extractEntry writes a single tar entry under the workspace root.
// Entries other than regular files and directories are skipped; symbolic
// links are out of scope for the virtual filesystem.
func (w *Workspace) extractEntry(hdr *tar.Header, r io.Reader) error {
	name := filepath.FromSlash(hdr.Name)
	dest := filepath.Join(w.root, name)

	// The joined path must stay inside the root (prevent directory traversal).
	rel, err := filepath.Rel(w.root, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return &ArchiveEntryEscapeError{Name: hdr.Name}
	}
	if rel == "." {
		return nil
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(dest, dirMode(hdr)); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", rel, err)
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("failed to create parent directory for %s: %w", rel, err)
		}
		if err := writeFileFrom(dest, r, fileMode(hdr)); err != nil {
			return fmt.Errorf("failed to extract %s: %w", rel, err)
		}
	default:
		// Hard links, symlinks, devices etc. have no place in the sandbox.
	}
	return nil
}

func writeFileFrom(dest string, r io.Reader, mode os.FileMode) error {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func dirMode(hdr *tar.Header) os.FileMode {
	if m := hdr.FileInfo().Mode().Perm(); m != 0 {
		return m
	}
	return 0o755
}

func fileMode(hdr *tar.Header) os.FileMode {
	if m := hdr.FileInfo().Mode().Perm(); m != 0 {
		return m
	}
	return 0o644
}
