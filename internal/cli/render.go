// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"auto-shebang/internal/config"
	"auto-shebang/internal/engine"
	"auto-shebang/internal/issue"
)

// RenderNotFoundError creates a styled diagnostic card for an exhausted
// walk: every searched origin, the probe dirs and suffixes in effect, and
// a concrete way to provide the missing interpreter.
func RenderNotFoundError(err *engine.NotFoundError) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ No interpreter found!"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Could not resolve %s for script %s.\n\n",
		renderNameStyle.Render("'"+err.Name+"'"),
		renderNameStyle.Render(err.Script)))

	for _, origin := range err.Origins {
		sb.WriteString(renderLabelStyle.Render("Search origin:"))
		sb.WriteString(renderValueStyle.Render(fmt.Sprintf("  %s (%s)", origin.Dir, origin.Label)))
		sb.WriteString("\n")
	}
	sb.WriteString(renderLabelStyle.Render("Probe dirs:"))
	sb.WriteString(renderValueStyle.Render("     " + strings.Join(err.ProbeDirs, ", ")))
	sb.WriteString("\n")
	sb.WriteString(renderLabelStyle.Render("Suffixes:"))
	sb.WriteString(renderValueStyle.Render("       " + err.Suffixes.String()))
	sb.WriteString("\n\n")

	sb.WriteString("To provide an interpreter, place one on the searched ancestry, e.g.:\n")
	sb.WriteString(CmdStyle.Render(fmt.Sprintf("  ln -s \"$(command -v %s)\" %s",
		strings.TrimPrefix(err.Name, "auto-"), suggestedLinkPath(err))))
	sb.WriteString("\n")

	sb.WriteString(renderHintStyle.Render(
		"Set " + config.EnvDebug + "=1 to trace every probed candidate."))
	sb.WriteString("\n")

	return sb.String()
}

// suggestedLinkPath picks the most natural place for a new interpreter
// link: the first relative probe dir under the first search origin.
func suggestedLinkPath(err *engine.NotFoundError) string {
	dir := "."
	for _, token := range err.ProbeDirs {
		if token != "." && !filepath.IsAbs(token) && !strings.HasPrefix(token, "~") {
			dir = token
			break
		}
	}
	if len(err.Origins) > 0 {
		dir = filepath.Join(err.Origins[0].Dir, dir)
	}
	return filepath.Join(dir, err.Name)
}

// RenderTargetError creates a styled message for a rejected override or
// fallback interpreter path.
func RenderTargetError(err *engine.TargetError) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ Configured interpreter rejected!"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("The %s path %s is %s.\n",
		err.Source,
		renderNameStyle.Render(err.Path),
		renderValueStyle.Render(err.Verdict.String())))

	envVar := config.EnvOverrideExe
	if err.Source == "fallback" {
		envVar = config.EnvFallbackExe
	}
	sb.WriteString(renderHintStyle.Render(
		"Fix or unset " + envVar + "; explicitly configured paths are never skipped."))
	sb.WriteString("\n")

	return sb.String()
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values use their Format method; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderFailure routes a resolution failure to the matching renderer.
func renderFailure(err error, verboseMode bool) string {
	var notFound *engine.NotFoundError
	if errors.As(err, &notFound) {
		return RenderNotFoundError(notFound)
	}
	var target *engine.TargetError
	if errors.As(err, &target) {
		return RenderTargetError(target)
	}
	return ErrorStyle.Render("Error: ") + formatErrorForDisplay(err, verboseMode) + "\n"
}
