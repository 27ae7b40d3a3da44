// SPDX-License-Identifier: MPL-2.0

// Package config loads the tarsh configuration: an optional CUE file,
// validated against an embedded schema and merged into viper over the
// built-in defaults.
package config
