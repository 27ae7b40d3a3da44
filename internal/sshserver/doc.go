// SPDX-License-Identifier: EPL-2.0

// Package sshserver exposes the tar shell over SSH using the Wish library.
// Every accepted connection gets its own freshly extracted workspace and
// its own session log; sessions never share state. The server binds to
// loopback by default and performs no authentication, so exposing it on a
// non-local address is an explicit operator decision.
package sshserver
