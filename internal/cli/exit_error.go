// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"

	"auto-shebang/internal/engine"
	"auto-shebang/internal/walker"
)

// ExitCode represents a process exit status code.
// The taxonomy mirrors the shell's conventions for command lookup:
// 126 means "found but not runnable", 127 means "not found".
type ExitCode int

const (
	// CodeSuccess means the interpreter resolved (or exec'd).
	CodeSuccess ExitCode = 0
	// CodeCheckMiss is the silent check-mode "would not resolve" outcome.
	CodeCheckMiss ExitCode = 1
	// CodeConfig covers invalid directive or environment values, unsafe
	// expansion, missing capabilities, and CLI misuse.
	CodeConfig ExitCode = 2
	// CodeNotExecutable means an explicitly configured interpreter path
	// exists but lacks execute permission.
	CodeNotExecutable ExitCode = 126
	// CodeNotFound means no interpreter resolved, or an explicitly
	// configured path does not name a regular file.
	CodeNotFound ExitCode = 127
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers. A nil Err means the diagnostic was already written (or the
// failure is deliberately silent) and only the code should propagate.
type ExitError struct {
	Code ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// codeForError maps a resolution failure to its exit code.
func codeForError(err error) ExitCode {
	var targetErr *engine.TargetError
	switch {
	case errors.Is(err, engine.ErrConfig):
		return CodeConfig
	case errors.As(err, &targetErr):
		if targetErr.Verdict == walker.NotExecutable {
			return CodeNotExecutable
		}
		return CodeNotFound
	case errors.Is(err, engine.ErrNotFound):
		return CodeNotFound
	default:
		return CodeConfig
	}
}
