// SPDX-License-Identifier: EPL-2.0

// Package issue provides user-facing error context: ActionableError wraps
// a failure with the operation, the resource involved, and suggestions for
// fixing it, while the issue registry holds renderable markdown help for
// the known startup failure classes.
package issue
