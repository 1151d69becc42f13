// SPDX-License-Identifier: MPL-2.0

package walker

import "os"

type (
	// Verdict is the outcome of validating one candidate path.
	Verdict int

	// Validator decides whether a filesystem path is an acceptable
	// interpreter. The engine's own binary is recognized by file identity,
	// not by path comparison, so it is skipped no matter how many alias
	// symlinks it was reached through.
	Validator struct {
		self os.FileInfo
	}
)

const (
	// Valid means the path exists, is a regular file, is executable, and
	// is not the engine's own binary.
	Valid Verdict = iota
	// NotFound means the path does not exist or is not a regular file.
	// Existence is checked through symlinks, so a dangling link is NotFound.
	NotFound
	// NotExecutable means a regular file without any execute bit.
	NotExecutable
	// IsSelf means the path is the engine's own running binary.
	IsSelf
)

// String returns a human-readable verdict name.
func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case NotFound:
		return "not found"
	case NotExecutable:
		return "not executable"
	case IsSelf:
		return "self"
	default:
		return "unknown"
	}
}

// NewValidator creates a Validator that skips the binary at selfPath.
// When selfPath cannot be inspected the self check is disabled; candidates
// are then judged on existence and mode alone.
func NewValidator(selfPath string) *Validator {
	v := &Validator{}
	if selfPath != "" {
		if info, err := os.Stat(selfPath); err == nil {
			v.self = info
		}
	}
	return v
}

// Check validates one candidate path.
func (v *Validator) Check(path string) Verdict {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return NotFound
	}
	if info.Mode().Perm()&0o111 == 0 {
		return NotExecutable
	}
	if v.self != nil && os.SameFile(v.self, info) {
		return IsSelf
	}
	return Valid
}
