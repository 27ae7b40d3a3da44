// SPDX-License-Identifier: MPL-2.0

// Package vfs owns the virtual filesystem a shell session operates on:
// a scratch directory populated by extracting a tar archive, and the
// resolver that maps user-typed virtual paths onto real paths confined
// under that directory.
package vfs
