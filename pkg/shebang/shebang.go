// SPDX-License-Identifier: MPL-2.0

// Package shebang is the embedding surface for interpreter resolution.
// It wraps the resolution engine behind a small, panic-isolated API so a
// host program can resolve interpreters without linking the CLI.
package shebang

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"auto-shebang/internal/directive"
	"auto-shebang/internal/engine"
)

// Options tunes a single resolution. Zero values mean "take it from the
// process": environment from os.Environ, script text from the script file.
type Options struct {
	// Environ is the environment snapshot to resolve against. Nil means
	// os.Environ().
	Environ []string

	// ScriptText is the script content to scan for directives. Empty means
	// the directive window is read from ScriptPath.
	ScriptText string

	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger
}

// Resolve returns the absolute path of the interpreter binary for name,
// searching from scriptPath's ancestry.
func Resolve(name, scriptPath string) (string, error) {
	return ResolveWithOptions(name, scriptPath, Options{})
}

// ResolveWithOptions is Resolve with an explicit environment, script text
// and logger. It never panics: internal panics come back as errors so an
// embedding caller is not terminated by a resolution bug.
func ResolveWithOptions(name, scriptPath string, opts Options) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("interpreter resolution panicked: %v", r)
		}
	}()

	text := opts.ScriptText
	if text == "" {
		text = readDirectiveWindow(scriptPath)
	}
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	res, err := engine.Resolve(engine.Request{
		Name:       name,
		ScriptPath: scriptPath,
		ScriptText: text,
		Environ:    environ,
		Logger:     opts.Logger,
	})
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Check reports whether an interpreter for name would resolve for
// scriptPath. All failure modes, including configuration errors, read as
// "no".
func Check(name, scriptPath string) bool {
	_, err := Resolve(name, scriptPath)
	return err == nil
}

// readDirectiveWindow returns at most the first lines of the script that
// the directive scanner would look at. Read failures yield an empty
// window: a missing or unreadable script still gets a plain ancestry walk.
func readDirectiveWindow(scriptPath string) string {
	f, err := os.Open(scriptPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	// No per-line length cap: a minified first line must not cut the
	// window short.
	var b strings.Builder
	reader := bufio.NewReader(f)
	for i := 0; i < directive.ScanLimit; i++ {
		line, err := reader.ReadString('\n')
		b.WriteString(line)
		if err != nil {
			if len(line) > 0 {
				b.WriteByte('\n')
			}
			break
		}
	}
	return b.String()
}
