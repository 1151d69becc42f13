// SPDX-License-Identifier: MPL-2.0

// Package expand performs safe, non-evaluating expansion of $NAME and
// ${NAME} references inside configuration tokens.
//
// The expansion itself is delegated to mvdan.cc/sh, which substitutes
// parameter references without running anything: the expand.Config carries
// no command-substitution handler, so even if a command substitution
// slipped past the up-front rejection it could not execute. Glob
// metacharacters are neither rejected nor expanded; callers must only use
// results in contexts that do not glob-interpret them.
package expand

import (
	"errors"
	"fmt"
	"strings"

	shexpand "mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrUnsafeExpansion is the sentinel error wrapped by UnsafeExpansionError.
var ErrUnsafeExpansion = errors.New("unsafe expansion")

// UnsafeExpansionError is returned when a template contains a command
// substitution marker. Detection is purely syntactic and happens before any
// substitution, so a rejected template is never partially expanded.
type UnsafeExpansionError struct {
	Template string
	Marker   string
}

// Error implements the error interface.
func (e *UnsafeExpansionError) Error() string {
	return fmt.Sprintf("template %q contains %q: command substitution is not allowed", e.Template, e.Marker)
}

// Unwrap returns ErrUnsafeExpansion so callers can use errors.Is.
func (e *UnsafeExpansionError) Unwrap() error { return ErrUnsafeExpansion }

// Expand replaces each $NAME or ${NAME} occurrence in template with the
// value returned by lookup (a missing variable expands to the empty
// string), leaving all other characters literal.
func Expand(template string, lookup func(string) string) (string, error) {
	if marker, found := unsafeMarker(template); found {
		return "", &UnsafeExpansionError{Template: template, Marker: marker}
	}

	if !strings.ContainsRune(template, '$') {
		return template, nil
	}

	word, err := syntax.NewParser().Document(strings.NewReader(template))
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", template, err)
	}

	cfg := &shexpand.Config{Env: shexpand.FuncEnviron(lookup)}
	out, err := shexpand.Document(cfg, word)
	if err != nil {
		return "", fmt.Errorf("expanding template %q: %w", template, err)
	}

	return out, nil
}

// unsafeMarker reports the first command-substitution marker found in the
// template, if any. Backticks are rejected anywhere, even unbalanced.
func unsafeMarker(template string) (string, bool) {
	if strings.Contains(template, "$(") {
		return "$(", true
	}
	if strings.Contains(template, "`") {
		return "`", true
	}
	return "", false
}
