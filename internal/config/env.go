// SPDX-License-Identifier: MPL-2.0

package config

import "strings"

// EnvPrefix namespaces every auto-shebang environment variable.
const EnvPrefix = "AUTO_SHEBANG_"

// Environment variables outside the per-setting overrides.
const (
	// EnvOverrideExe short-circuits resolution with an explicit interpreter
	// path. Honored only when trust-env is yes.
	EnvOverrideExe = EnvPrefix + "OVERRIDE_EXE"
	// EnvFallbackExe is validated when the tree walk comes up empty.
	// Honored only when trust-env is yes.
	EnvFallbackExe = EnvPrefix + "FALLBACK_EXE"
	// EnvDebug enables candidate tracing. Read regardless of trust-env.
	EnvDebug = EnvPrefix + "DEBUG"
	// EnvLibrary suppresses the CLI entry point when the engine is embedded.
	EnvLibrary = EnvPrefix + "LIBRARY"
)

// EnvName derives the override variable for a key:
// "probe-dirs" becomes "AUTO_SHEBANG_PROBE_DIRS".
func EnvName(key Key) string {
	return EnvPrefix + strings.ReplaceAll(strings.ToUpper(string(key)), "-", "_")
}

// EnvSnapshot is an immutable snapshot of the process environment taken
// once per resolution. Nothing outside the configuration builder reads
// ambient environment state; every consumer goes through the snapshot.
type EnvSnapshot struct {
	vars map[string]string
}

// SnapshotEnviron builds a snapshot from os.Environ-style "KEY=value"
// entries. Later duplicates win, matching exec semantics.
func SnapshotEnviron(environ []string) *EnvSnapshot {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			vars[kv[:i]] = kv[i+1:]
		}
	}
	return &EnvSnapshot{vars: vars}
}

// Lookup returns the value of name and whether it was present.
func (s *EnvSnapshot) Lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Get returns the value of name, or empty when unset.
func (s *EnvSnapshot) Get(name string) string {
	return s.vars[name]
}

// Home returns the snapshot's HOME value, empty when unset.
func (s *EnvSnapshot) Home() string {
	return s.vars["HOME"]
}
