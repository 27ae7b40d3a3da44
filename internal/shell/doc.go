// SPDX-License-Identifier: MPL-2.0

// Package shell implements the interactive command shell over the virtual
// filesystem: session state, the command registry (ls, cd, rmdir, tail),
// and the runner that drives the script phase and the interactive loop.
//
// The whole package is single-threaded: one command is fully processed,
// output included, before the next line is read. Session state is owned
// exclusively by the runner's control loop.
package shell
