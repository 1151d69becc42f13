// SPDX-License-Identifier: MPL-2.0

// Package fspath provides the filesystem path primitives of the resolver:
// canonicalizing a script's containing directory and following file-level
// symlink chains one hop at a time.
//
// The two operations are deliberately asymmetric. ScriptDir resolves
// directory-level symlinks only and leaves the script file itself alone;
// ResolveChain follows the file-level chain and never touches the process
// working directory. Neither function chdirs, so the caller's working
// directory is untouched on every path, including failures.
package fspath

import (
	"fmt"
	"path/filepath"
)

// ScriptDir returns the containing directory of path as a canonical
// absolute physical path, with all directory-level symlinks resolved.
// A symlink at the file level is preserved: ScriptDir("/a/link-to-script")
// canonicalizes "/a", not the link target.
func ScriptDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path of %q: %w", path, err)
	}

	dir := filepath.Dir(abs)
	phys, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", fmt.Errorf("canonicalizing script directory %q: %w", dir, err)
	}

	return phys, nil
}
