// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package cli

import "fmt"

// execProcess is unavailable without execve semantics; resolution modes
// still work, only the exec handoff is refused.
func execProcess(path string, argv, environ []string) error {
	return fmt.Errorf("exec mode is not supported on this platform")
}
