// SPDX-License-Identifier: MPL-2.0

//go:build unix

package cli

import "golang.org/x/sys/unix"

// execProcess replaces the current process image. It only returns on
// failure.
func execProcess(path string, argv, environ []string) error {
	return unix.Exec(path, argv, environ)
}
