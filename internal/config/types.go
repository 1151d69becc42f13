// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Key identifies one known configuration setting. The set of keys is
// closed: the directive parser ignores anything else, and the builder
// rejects invalid values at this boundary instead of deep in resolution.
type Key string

const (
	// KeyProbeDirs is the ordered list of probe-dir tokens, colon separated.
	KeyProbeDirs Key = "probe-dirs"
	// KeySuffixes is the suffix spec; a leading colon means "bare name first".
	KeySuffixes Key = "suffixes"
	// KeyFollowSymlinks enables the secondary, symlink-resolved search origin.
	KeyFollowSymlinks Key = "follow-symlinks"
	// KeySymlinkPriority orders the two origins of a dual-origin search.
	KeySymlinkPriority Key = "symlink-priority"
	// KeyTrustEnv gates all environment overrides except the debug flag.
	// It deliberately has no environment counterpart: an untrusted
	// environment must not be able to re-enable its own trust.
	KeyTrustEnv Key = "trust-env"
	// KeyUnsafeExpandProbeDirs gates $VAR expansion inside probe-dir tokens.
	KeyUnsafeExpandProbeDirs Key = "unsafe-expand-probe-dirs"
)

// Textual defaults, in the same form directives and env overrides use.
const (
	DefaultProbeDirs       = ".:bin"
	DefaultSuffixes        = ":primary:secondary:tertiary"
	DefaultFollowSymlinks  = "no"
	DefaultSymlinkPriority = "real-first"
	DefaultTrustEnv        = "yes"
	DefaultUnsafeExpand    = "no"
)

// ListSeparator separates tokens in probe-dir lists and suffix specs.
const ListSeparator = ":"

// KnownKeys returns every recognized directive key, for the parser.
func KnownKeys() []string {
	return []string{
		string(KeyProbeDirs),
		string(KeySuffixes),
		string(KeyFollowSymlinks),
		string(KeySymlinkPriority),
		string(KeyTrustEnv),
		string(KeyUnsafeExpandProbeDirs),
	}
}

// SymlinkPriority orders the real-file origin against the symlink origin
// in a dual-origin search.
type SymlinkPriority int

const (
	// RealFirst searches the ancestry of the resolved physical file first.
	RealFirst SymlinkPriority = iota
	// SymlinkFirst searches the ancestry of the symlink itself first.
	SymlinkFirst
)

// String returns the textual configuration form.
func (p SymlinkPriority) String() string {
	switch p {
	case SymlinkFirst:
		return "symlink-first"
	default:
		return "real-first"
	}
}

// ParseSymlinkPriority parses the textual form, rejecting unknown values.
func ParseSymlinkPriority(s string) (SymlinkPriority, error) {
	switch s {
	case "real-first":
		return RealFirst, nil
	case "symlink-first":
		return SymlinkFirst, nil
	default:
		return RealFirst, &InvalidValueError{
			Key:     KeySymlinkPriority,
			Value:   s,
			Allowed: []string{"real-first", "symlink-first"},
		}
	}
}

// SuffixSpec describes which names are formed at each probe location.
type SuffixSpec struct {
	// IncludeBare means the unsuffixed invocation name is tried first.
	IncludeBare bool
	// Suffixes are tried in order, each appended as "-<suffix>".
	Suffixes []string
}

// ParseSuffixSpec parses the textual form. A leading separator selects the
// bare name; an empty value means bare name only.
func ParseSuffixSpec(s string) SuffixSpec {
	if s == "" {
		return SuffixSpec{IncludeBare: true}
	}
	return SuffixSpec{
		IncludeBare: strings.HasPrefix(s, ListSeparator),
		Suffixes:    SplitList(s),
	}
}

// Names returns the candidate file names for base, in probe order.
func (s SuffixSpec) Names(base string) []string {
	names := make([]string, 0, len(s.Suffixes)+1)
	if s.IncludeBare {
		names = append(names, base)
	}
	for _, suffix := range s.Suffixes {
		names = append(names, base+"-"+suffix)
	}
	return names
}

// String renders the spec for diagnostics, e.g. "(bare), primary, secondary".
func (s SuffixSpec) String() string {
	parts := make([]string, 0, len(s.Suffixes)+1)
	if s.IncludeBare {
		parts = append(parts, "(bare)")
	}
	parts = append(parts, s.Suffixes...)
	return strings.Join(parts, ", ")
}

// SplitList splits a colon-separated token list, dropping empty tokens.
// Duplicates are preserved: a token listed twice is probed twice.
func SplitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ListSeparator) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Config is the effective settings for one resolution. It is built fresh
// per invocation and never mutated afterwards.
type Config struct {
	ProbeDirs             []string
	Suffixes              SuffixSpec
	FollowSymlinks        bool
	SymlinkPriority       SymlinkPriority
	TrustEnv              bool
	UnsafeExpandProbeDirs bool

	// OverrideExe and FallbackExe are sourced from the trusted environment
	// only, never from directives.
	OverrideExe string
	FallbackExe string

	// Debug is environment-controlled regardless of TrustEnv.
	Debug bool

	// Home is the home directory captured from the environment snapshot,
	// used for tilde expansion of probe-dir tokens. Empty when unset.
	Home string
}

// ErrInvalidBoolean is the sentinel error wrapped by InvalidBooleanError.
var ErrInvalidBoolean = errors.New("invalid boolean value")

// ErrInvalidValue is the sentinel error wrapped by InvalidValueError.
var ErrInvalidValue = errors.New("invalid value")

// InvalidBooleanError reports a boolean setting with an unrecognized
// literal. Directive booleans must be exactly "yes" or "no"; environment
// booleans must be exactly "1" or "0".
type InvalidBooleanError struct {
	Key    Key
	Value  string
	Source string // "directive" or "environment"
}

// Error implements the error interface.
func (e *InvalidBooleanError) Error() string {
	want := `"yes" or "no"`
	if e.Source == "environment" {
		want = `"1" or "0"`
	}
	return fmt.Sprintf("%s %s: invalid boolean %q (must be %s)", e.Source, e.Key, e.Value, want)
}

// Unwrap returns ErrInvalidBoolean so callers can use errors.Is.
func (e *InvalidBooleanError) Unwrap() error { return ErrInvalidBoolean }

// InvalidValueError reports an enum setting with an unrecognized literal.
type InvalidValueError struct {
	Key     Key
	Value   string
	Allowed []string
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: invalid value %q (must be one of %s)", e.Key, e.Value, strings.Join(e.Allowed, ", "))
}

// Unwrap returns ErrInvalidValue so callers can use errors.Is.
func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }
