// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"
	"fmt"

	"auto-shebang/internal/config"
	"auto-shebang/internal/walker"
)

// Class sentinels. Every failure leaving the engine unwraps to exactly one
// of these; the CLI front end is the only place that turns a class into an
// exit code.
var (
	// ErrConfig marks configuration-class failures: invalid directive or
	// environment values, unsafe expansion, unset home, symlink loops, and
	// missing capabilities for opted-in features.
	ErrConfig = errors.New("configuration error")
	// ErrNotFound marks walk exhaustion: the expected, non-exceptional
	// "no interpreter configured" outcome.
	ErrNotFound = errors.New("no interpreter found")
)

// Resolution is a successful outcome. It is never partially populated.
type Resolution struct {
	// Path is the absolute path of the resolved interpreter.
	Path string
	// Config is the effective configuration the resolution ran under.
	Config *config.Config
}

// NotFoundError carries the context of an exhausted walk so the front end
// can render an actionable diagnostic.
type NotFoundError struct {
	Name      string
	Script    string
	Origins   []walker.Origin
	ProbeDirs []string
	Suffixes  config.SuffixSpec
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no interpreter %q found in the ancestry of %s", e.Name, e.Script)
}

// Unwrap returns ErrNotFound so callers can use errors.Is.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TargetError reports an explicitly configured interpreter path
// (override or fallback) that failed validation. These paths were trusted
// by the user, so the failure is always surfaced, never skipped.
type TargetError struct {
	// Source is "override" or "fallback".
	Source  string
	Path    string
	Verdict walker.Verdict
}

// Error implements the error interface.
func (e *TargetError) Error() string {
	return fmt.Sprintf("%s interpreter %q is %s", e.Source, e.Path, e.Verdict)
}

// classified attaches a class sentinel to an underlying error while
// keeping the original message and chain intact.
type classified struct {
	class error
	err   error
}

func (c *classified) Error() string { return c.err.Error() }

func (c *classified) Unwrap() []error { return []error{c.class, c.err} }

// configError wraps err into the configuration class.
func configError(err error) error {
	if err == nil {
		return nil
	}
	return &classified{class: ErrConfig, err: err}
}
