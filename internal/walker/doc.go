// SPDX-License-Identifier: MPL-2.0

// Package walker implements the ancestor-directory search for an
// interpreter candidate.
//
// A walk covers one or two origins in configured priority order. For each
// origin it visits every ancestor directory up to and including the
// filesystem root, joins each probe-dir with the current level, and forms
// candidate names from the invocation name and the configured suffixes.
// Candidates are generated lazily in that fixed total order and validated
// one at a time; the first valid candidate ends the walk immediately.
//
// Absolute and tilde-rooted probe-dirs do not depend on the walk level, so
// they are probed exactly once, at their configured ordinal position during
// the first level of the first origin, and skipped everywhere else.
package walker
