// SPDX-License-Identifier: MPL-2.0

package cli

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across all CLI output.
// These colors are designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles, headers, and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles, secondary text, and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red - used for errors, failures, and negative outcomes.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings, caution states, and attention-needed items.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for paths, commands, and interactive elements.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray - used for verbose/debug output and supplementary details.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

// Base styles - reusable lipgloss styles built from the color palette.
var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// CmdStyle is for command lines and interactive elements.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// Render-specific styles for the styled diagnostic cards (used by render.go).

	// renderHeaderStyle is for error card headers (bold red).
	renderHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorError).
				MarginBottom(1)

	// renderNameStyle is for invocation names in error cards (bold blue).
	renderNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	// renderLabelStyle is for section labels in error cards (bold amber).
	renderLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWarning)

	// renderValueStyle is for detail values in error cards (gray).
	renderValueStyle = lipgloss.NewStyle().
				Foreground(ColorVerbose)

	// renderHintStyle is for hint text at the bottom of error cards (muted italic).
	renderHintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			MarginTop(1)
)
