// SPDX-License-Identifier: MPL-2.0

// Package cli is the auto-shebang front end: flag parsing, diagnostic
// rendering, exit-code mapping, and the exec handoff. It is the only layer
// that writes to the streams or exits the process.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"auto-shebang/internal/engine"
	"auto-shebang/pkg/shebang"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// ProgramName is the management-mode invocation name. Any other argv[0]
// basename switches the binary into exec mode.
const ProgramName = "auto-shebang"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// resolveMode prints the resolved interpreter path
	resolveMode bool
	// checkMode exits 0/1 without output
	checkMode bool

	// rootCmd is the management-mode command, reached only when the binary
	// is invoked under its own name
	rootCmd = &cobra.Command{
		Use:   ProgramName + " (--resolve | --check) <name> <script>",
		Short: "Resolve script interpreters from filesystem ancestry",
		Long: TitleStyle.Render(ProgramName) + SubtitleStyle.Render(" - Resolve script interpreters from filesystem ancestry") + `

auto-shebang finds the interpreter for a script by walking up from the
script's own directory and probing for a binary named after the
invocation, never consulting PATH. Symlink the binary under an
interpreter name (e.g. auto-python) and put that name on the script's
shebang line to get per-tree interpreter selection.

` + SubtitleStyle.Render("Quick Start:") + `
  1. ln -s "$(command -v auto-shebang)" ~/.local/bin/auto-python
  2. ln -s "$(command -v python3)" <project>/bin/auto-python
  3. Use '#!/usr/bin/env auto-python' as the script's shebang

` + SubtitleStyle.Render("Examples:") + `
  auto-shebang --resolve auto-python ./deploy.sh   Print the resolved path
  auto-shebang --check auto-python ./deploy.sh     Exit 0/1, no output`,
		RunE: runRoot,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&resolveMode, "resolve", false, "resolve the interpreter and print its path")
	rootCmd.Flags().BoolVar(&checkMode, "check", false, "report resolvability via the exit code only")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute dispatches on the invocation name and runs the matching mode.
// This is called by main.main() and is the process's only exit site.
func Execute() {
	if name := invocationName(os.Args[0]); name != ProgramName {
		os.Exit(int(runExecMode(name, os.Args[1:])))
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(exitErrorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(CodeConfig))
	}
}

// exitErrorHandler suppresses fang's rendering for ExitError values, whose
// diagnostics were already written (or are deliberately silent), and keeps
// the default styling for everything else (flag misuse, unknown args).
func exitErrorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// invocationName normalizes argv[0] down to the bare program name.
func invocationName(argv0 string) string {
	name := filepath.Base(argv0)
	return strings.TrimSuffix(name, ".exe")
}

// runRoot handles management mode: --resolve prints the path, --check is
// silent and speaks through the exit code.
func runRoot(cmd *cobra.Command, args []string) error {
	if !resolveMode && !checkMode && len(args) == 0 {
		return cmd.Help()
	}
	if resolveMode == checkMode {
		return fmt.Errorf("exactly one of --resolve or --check is required")
	}
	if len(args) != 2 {
		return fmt.Errorf("expected <name> <script>, got %d argument(s)", len(args))
	}
	name, script := args[0], args[1]

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	debug := debugEnabled()
	path, err := shebang.ResolveWithOptions(name, script, shebang.Options{
		Logger: newLogger(debug),
	})

	if checkMode {
		if err == nil {
			return nil
		}
		// Configuration errors are never silent: a broken directive must
		// not read as an orderly "no".
		if errors.Is(err, engine.ErrConfig) {
			fmt.Fprint(cmd.ErrOrStderr(), renderFailure(err, debug))
			return &ExitError{Code: CodeConfig}
		}
		return &ExitError{Code: CodeCheckMiss}
	}

	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), renderFailure(err, debug))
		return &ExitError{Code: codeForError(err)}
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// runExecMode resolves the interpreter for the invocation name and
// replaces the current process with it. On success it does not return.
func runExecMode(name string, args []string) ExitCode {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "%s %s invoked as %q requires a script argument\n",
			ErrorStyle.Render("Error:"), ProgramName, name)
		return CodeConfig
	}
	script := args[0]

	debug := debugEnabled()
	path, err := shebang.ResolveWithOptions(name, script, shebang.Options{
		Logger: newLogger(debug),
	})
	if err != nil {
		fmt.Fprint(os.Stderr, renderFailure(err, debug))
		return codeForError(err)
	}

	// The interpreter sees exactly the argv a direct shebang invocation
	// would produce: its own path, the script, then the script's args.
	argv := append([]string{path, script}, args[1:]...)
	if err := execProcess(path, argv, os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "%s exec %s: %v\n", ErrorStyle.Render("Error:"), path, err)
		if errors.Is(err, os.ErrPermission) {
			return CodeNotExecutable
		}
		return CodeNotFound
	}
	return CodeSuccess
}
