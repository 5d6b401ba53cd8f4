// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styles for the CLI commands.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lavavago/Agente/internal/ui/styles"
)

// init picks the lipgloss color profile for the current terminal.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

func colored(c lipgloss.TerminalColor, bold bool) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(bold)
}

var (
	// TitleStyle heads command output.
	TitleStyle = colored(styles.Indigo, true)

	// LabelStyle pads field labels to one column.
	LabelStyle = colored(styles.TextSecondary, false).Width(20)

	// PromptStyle is the REPL prompt.
	PromptStyle = colored(styles.Cyan, true)

	// AgentStyle labels agent replies in the REPL.
	AgentStyle = colored(styles.Indigo, true)

	SuccessStyle = colored(styles.Green, true)
	ErrorStyle   = colored(styles.Red, true)
	WarningStyle = colored(styles.Amber, false)

	// DimStyle is for hints and counts.
	DimStyle = colored(styles.TextMuted, false)

	SeparatorStyle = colored(styles.Overlay, false)
)

// RenderSeparator draws a rule, 40 cells unless a width is given.
func RenderSeparator(width ...int) string {
	w := 40
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return SeparatorStyle.Render(strings.Repeat("─", w))
}

// RenderLabel pads label to the label column.
func RenderLabel(label string) string {
	return LabelStyle.Render(label)
}
