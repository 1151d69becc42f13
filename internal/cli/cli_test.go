// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"auto-shebang/internal/config"
	"auto-shebang/internal/engine"
	"auto-shebang/internal/issue"
	"auto-shebang/internal/walker"

	"github.com/spf13/cobra"
)

func TestCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{
			name: "config class",
			err: issue.WrapWithOperation(
				errors.Join(engine.ErrConfig, errors.New("bad boolean")), "build configuration"),
			want: CodeConfig,
		},
		{
			name: "walk exhausted",
			err:  &engine.NotFoundError{Name: "auto-python", Script: "/p/s.py"},
			want: CodeNotFound,
		},
		{
			name: "override missing",
			err:  &engine.TargetError{Source: "override", Path: "/x", Verdict: walker.NotFound},
			want: CodeNotFound,
		},
		{
			name: "fallback not executable",
			err:  &engine.TargetError{Source: "fallback", Path: "/x", Verdict: walker.NotExecutable},
			want: CodeNotExecutable,
		},
		{
			name: "unclassified",
			err:  errors.New("surprise"),
			want: CodeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeForError(tt.err); got != tt.want {
				t.Errorf("codeForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	silent := &ExitError{Code: CodeCheckMiss}
	if silent.Error() != "exit status 1" {
		t.Errorf("Error() = %q", silent.Error())
	}

	cause := errors.New("boom")
	wrapped := &ExitError{Code: CodeConfig, Err: cause}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("ExitError should unwrap to its cause")
	}
}

func TestInvocationName(t *testing.T) {
	tests := []struct {
		argv0 string
		want  string
	}{
		{"/usr/local/bin/auto-shebang", "auto-shebang"},
		{"auto-python", "auto-python"},
		{"/home/u/.local/bin/auto-node", "auto-node"},
		{`auto-shebang.exe`, "auto-shebang"},
	}

	for _, tt := range tests {
		if got := invocationName(tt.argv0); got != tt.want {
			t.Errorf("invocationName(%q) = %q, want %q", tt.argv0, got, tt.want)
		}
	}
}

func TestRenderNotFoundError(t *testing.T) {
	spec := config.ParseSuffixSpec(config.DefaultSuffixes)
	card := RenderNotFoundError(&engine.NotFoundError{
		Name:   "auto-python",
		Script: "/p/lib/tools/deploy.sh",
		Origins: []walker.Origin{
			{Dir: "/p/lib/tools", Label: walker.ScriptOrigin},
			{Dir: "/real/tools", Label: walker.ResolvedOrigin},
		},
		ProbeDirs: []string{".", "bin"},
		Suffixes:  spec,
	})

	for _, want := range []string{
		"auto-python",
		"/p/lib/tools/deploy.sh",
		"Search origin:",
		"/real/tools",
		"Probe dirs:",
		"., bin",
		"Suffixes:",
		"ln -s",
		"/p/lib/tools/bin/auto-python",
		config.EnvDebug + "=1",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("card is missing %q:\n%s", want, card)
		}
	}
}

func TestRenderTargetError(t *testing.T) {
	out := RenderTargetError(&engine.TargetError{
		Source:  "override",
		Path:    "/opt/python",
		Verdict: walker.NotExecutable,
	})

	for _, want := range []string{"override", "/opt/python", "not executable", config.EnvOverrideExe} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}

	fallback := RenderTargetError(&engine.TargetError{
		Source:  "fallback",
		Path:    "/opt/python",
		Verdict: walker.NotFound,
	})
	if !strings.Contains(fallback, config.EnvFallbackExe) {
		t.Errorf("fallback output should name %s:\n%s", config.EnvFallbackExe, fallback)
	}
}

func TestSuggestedLinkPath(t *testing.T) {
	tests := []struct {
		name      string
		probeDirs []string
		origins   []walker.Origin
		want      string
	}{
		{
			name:      "first relative probe dir",
			probeDirs: []string{".", "bin"},
			origins:   []walker.Origin{{Dir: "/p/tools", Label: walker.ScriptOrigin}},
			want:      "/p/tools/bin/auto-x",
		},
		{
			name:      "dot only",
			probeDirs: []string{"."},
			origins:   []walker.Origin{{Dir: "/p", Label: walker.ScriptOrigin}},
			want:      "/p/auto-x",
		},
		{
			name:      "absolute tokens skipped",
			probeDirs: []string{"/opt/bin", "tools"},
			origins:   []walker.Origin{{Dir: "/p", Label: walker.ScriptOrigin}},
			want:      "/p/tools/auto-x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestedLinkPath(&engine.NotFoundError{
				Name:      "auto-x",
				ProbeDirs: tt.probeDirs,
				Origins:   tt.origins,
			})
			if got != tt.want {
				t.Errorf("suggestedLinkPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay() = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("build configuration").
		WithSuggestion("Check the directive line").
		Wrap(errors.New("bad value")).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "build configuration") || !strings.Contains(got, "• Check the directive line") {
		t.Errorf("formatErrorForDisplay() = %q", got)
	}

	verbose := formatErrorForDisplay(actionable, true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("verbose output missing chain: %q", verbose)
	}
}

// setMode flips the package-level mode flags for one test.
func setMode(t *testing.T, resolve, check bool) {
	t.Helper()
	prevResolve, prevCheck := resolveMode, checkMode
	resolveMode, checkMode = resolve, check
	t.Cleanup(func() { resolveMode, checkMode = prevResolve, prevCheck })
}

// captureCmd returns a command with buffered streams for runRoot tests.
func captureCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func writeTestScript(t *testing.T, path, text string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		t.Fatal(err)
	}
}

func TestRunRoot_CheckMissIsSilent(t *testing.T) {
	setMode(t, false, true)
	script := filepath.Join(t.TempDir(), "lib", "run.sh")
	writeTestScript(t, script, "#!/usr/bin/env auto-nowhere\n", 0o644)

	cmd, stdout, stderr := captureCmd()
	err := runRoot(cmd, []string{"auto-nowhere", script})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != CodeCheckMiss {
		t.Fatalf("runRoot() = %v, want ExitError with code %d", err, CodeCheckMiss)
	}
	if stdout.Len() != 0 {
		t.Errorf("check miss wrote to stdout: %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("check miss wrote to stderr: %q", stderr.String())
	}
}

func TestRunRoot_CheckHitIsSilent(t *testing.T) {
	setMode(t, false, true)
	root := t.TempDir()
	script := filepath.Join(root, "lib", "run.py")
	writeTestScript(t, script, "#!/usr/bin/env auto-python\n", 0o644)
	writeTestScript(t, filepath.Join(root, "bin", "auto-python"), "#!/bin/sh\n", 0o755)

	cmd, stdout, stderr := captureCmd()
	if err := runRoot(cmd, []string{"auto-python", script}); err != nil {
		t.Fatalf("runRoot() error: %v", err)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("check hit wrote output: stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestRunRoot_CheckConfigErrorIsLoud(t *testing.T) {
	setMode(t, false, true)
	script := filepath.Join(t.TempDir(), "lib", "run.sh")
	writeTestScript(t, script, "# auto-shebang-follow-symlinks=maybe\n", 0o644)

	cmd, stdout, stderr := captureCmd()
	err := runRoot(cmd, []string{"auto-x", script})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != CodeConfig {
		t.Fatalf("runRoot() = %v, want ExitError with code %d", err, CodeConfig)
	}
	if stdout.Len() != 0 {
		t.Errorf("config error wrote to stdout: %q", stdout.String())
	}
	if stderr.Len() == 0 {
		t.Error("config error in check mode must surface on stderr")
	}
}

func TestRunRoot_ResolvePrintsPath(t *testing.T) {
	setMode(t, true, false)
	root := t.TempDir()
	script := filepath.Join(root, "lib", "run.py")
	writeTestScript(t, script, "#!/usr/bin/env auto-python\n", 0o644)
	writeTestScript(t, filepath.Join(root, "bin", "auto-python"), "#!/bin/sh\n", 0o755)

	cmd, stdout, stderr := captureCmd()
	if err := runRoot(cmd, []string{"auto-python", script}); err != nil {
		t.Fatalf("runRoot() error: %v", err)
	}
	got := strings.TrimSuffix(stdout.String(), "\n")
	want, err := filepath.EvalSymlinks(filepath.Join(root, "bin", "auto-python"))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("resolve printed %q, want %q", got, want)
	}
	if stderr.Len() != 0 {
		t.Errorf("resolve success wrote to stderr: %q", stderr.String())
	}
}

func TestRunRoot_ModeFlagValidation(t *testing.T) {
	tests := []struct {
		name    string
		resolve bool
		check   bool
		args    []string
	}{
		{name: "both modes", resolve: true, check: true, args: []string{"a", "b"}},
		{name: "no mode with args", resolve: false, check: false, args: []string{"a", "b"}},
		{name: "missing script", resolve: true, check: false, args: []string{"a"}},
		{name: "stray positional", resolve: true, check: false, args: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMode(t, tt.resolve, tt.check)
			cmd, _, _ := captureCmd()
			err := runRoot(cmd, tt.args)
			if err == nil {
				t.Fatal("runRoot() accepted invalid usage")
			}
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				t.Fatalf("usage error should stay a plain error for the front end, got ExitError %d", exitErr.Code)
			}
		})
	}
}
