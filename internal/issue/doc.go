// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines an error type that carries the failed operation, the resource
// involved, and remediation suggestions, so the CLI can render diagnostics
// that tell the user what to do next instead of only what went wrong.
package issue
