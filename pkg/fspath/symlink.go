// SPDX-License-Identifier: MPL-2.0

package fspath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MaxHops bounds the number of symlink hops ResolveChain will follow.
// The filesystem is never trusted to terminate a chain on its own.
const MaxHops = 40

// ErrSymlinkLoop is the sentinel error wrapped by SymlinkLoopError.
var ErrSymlinkLoop = errors.New("symlink loop")

// SymlinkLoopError is returned when a symlink chain does not reach a
// non-symlink within MaxHops hops.
type SymlinkLoopError struct {
	// Path is the original path whose chain was being followed.
	Path string
	// Last is the link at which the hop budget ran out.
	Last string
}

// Error implements the error interface.
func (e *SymlinkLoopError) Error() string {
	return fmt.Sprintf("symlink chain from %q exceeds %d hops (stopped at %q)", e.Path, MaxHops, e.Last)
}

// Unwrap returns ErrSymlinkLoop so callers can use errors.Is.
func (e *SymlinkLoopError) Unwrap() error { return ErrSymlinkLoop }

// ResolveChain follows the file-level symlink chain starting at path and
// returns the first non-symlink reached. Each hop reads only the immediate
// link target; a relative target is resolved against the directory
// containing the link, not the process working directory.
func ResolveChain(path string) (string, error) {
	cur := path
	for hop := 0; hop < MaxHops; hop++ {
		info, err := os.Lstat(cur)
		if err != nil {
			return "", fmt.Errorf("inspecting %q: %w", cur, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return cur, nil
		}

		target, err := os.Readlink(cur)
		if err != nil {
			return "", fmt.Errorf("reading symlink %q: %w", cur, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(cur), target)
		}
		cur = target
	}

	return "", &SymlinkLoopError{Path: path, Last: cur}
}
