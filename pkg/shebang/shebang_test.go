// SPDX-License-Identifier: MPL-2.0

package shebang

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"auto-shebang/internal/engine"
)

func fixture(t *testing.T, scriptText string) (script, interp string) {
	t.Helper()
	root := t.TempDir()
	script = filepath.Join(root, "lib", "tools", "deploy.sh")
	if err := os.MkdirAll(filepath.Dir(script), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(script, []byte(scriptText), 0o644); err != nil {
		t.Fatal(err)
	}
	interp = filepath.Join(root, "bin", "auto-python")
	if err := os.MkdirAll(filepath.Dir(interp), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(interp, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return script, interp
}

func physical(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestResolve(t *testing.T) {
	script, interp := fixture(t, "#!/usr/bin/env auto-python\n")

	got, err := Resolve("auto-python", script)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != physical(t, interp) {
		t.Errorf("Resolve() = %q, want %q", got, physical(t, interp))
	}
}

func TestResolve_ReadsDirectivesFromFile(t *testing.T) {
	script, _ := fixture(t, "#!/usr/bin/env auto-python\n# auto-shebang-probe-dirs=tools\n")
	interp := filepath.Join(filepath.Dir(script), "tools", "auto-python")
	if err := os.MkdirAll(filepath.Dir(interp), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(interp, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve("auto-python", script)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != physical(t, interp) {
		t.Errorf("Resolve() = %q, want the directive-selected %q", got, physical(t, interp))
	}
}

func TestResolve_DirectiveWindowIsBounded(t *testing.T) {
	// A directive past the scan window must be invisible.
	text := "#!/usr/bin/env auto-python\n" + strings.Repeat("# filler\n", 30) +
		"# auto-shebang-probe-dirs=elsewhere\n"
	script, interp := fixture(t, text)

	got, err := Resolve("auto-python", script)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != physical(t, interp) {
		t.Errorf("Resolve() = %q, want %q (late directive ignored)", got, physical(t, interp))
	}
}

func TestResolveWithOptions_ExplicitTextWins(t *testing.T) {
	script, _ := fixture(t, "#!/usr/bin/env auto-python\n")
	interp := filepath.Join(filepath.Dir(script), "vendored", "auto-python")
	if err := os.MkdirAll(filepath.Dir(interp), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(interp, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveWithOptions("auto-python", script, Options{
		ScriptText: "# auto-shebang-probe-dirs=vendored\n",
		Environ:    []string{},
	})
	if err != nil {
		t.Fatalf("ResolveWithOptions() error: %v", err)
	}
	if got != physical(t, interp) {
		t.Errorf("ResolveWithOptions() = %q, want %q", got, physical(t, interp))
	}
}

func TestResolveWithOptions_EnvironIsolation(t *testing.T) {
	script, interp := fixture(t, "#!/usr/bin/env auto-python\n")
	t.Setenv("AUTO_SHEBANG_OVERRIDE_EXE", "/nonexistent")

	// An explicit empty snapshot shields the call from the ambient process
	// environment.
	got, err := ResolveWithOptions("auto-python", script, Options{Environ: []string{}})
	if err != nil {
		t.Fatalf("ResolveWithOptions() error: %v", err)
	}
	if got != physical(t, interp) {
		t.Errorf("ResolveWithOptions() = %q, want %q", got, physical(t, interp))
	}
}

func TestResolve_NotFoundError(t *testing.T) {
	script, _ := fixture(t, "x\n")

	_, err := Resolve("auto-nowhere", script)
	if !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("error %v is not engine.ErrNotFound", err)
	}
}

func TestCheck(t *testing.T) {
	script, _ := fixture(t, "#!/usr/bin/env auto-python\n")

	if !Check("auto-python", script) {
		t.Error("Check() = false for a resolvable interpreter")
	}
	if Check("auto-nowhere", script) {
		t.Error("Check() = true for a missing interpreter")
	}
	if Check("auto-python", filepath.Join(t.TempDir(), "no", "dir", "s.py")) {
		t.Error("Check() = true for a script in a missing directory")
	}
}

func TestResolve_LongFirstLineKeepsDirectives(t *testing.T) {
	text := "#!/usr/bin/env auto-python " + strings.Repeat("x", 70*1024) +
		"\n# auto-shebang-probe-dirs=tools\n"
	script, _ := fixture(t, text)
	interp := filepath.Join(filepath.Dir(script), "tools", "auto-python")
	if err := os.MkdirAll(filepath.Dir(interp), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(interp, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve("auto-python", script)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != physical(t, interp) {
		t.Errorf("Resolve() = %q, want %q (directive after a long line)", got, physical(t, interp))
	}
}
