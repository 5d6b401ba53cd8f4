// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lavavago/Agente/internal/ui/styles"
)

// QuickAction is a shortcut button that sends a fixed text.
type QuickAction struct {
	Key   string // key name as reported by tea.KeyMsg.String()
	Label string
	Text  string
}

// QuickActions are the F1-F4 buttons under the conversation.
var QuickActions = []QuickAction{
	{Key: "f1", Label: "Ver catálogo", Text: "Ver catálogo"},
	{Key: "f2", Label: "Productos populares", Text: "Productos populares"},
	{Key: "f3", Label: "Sofás modulares", Text: "modular"},
	{Key: "f4", Label: "Saludar", Text: "Hola"},
}

// QuickActionForKey returns the action bound to key.
func QuickActionForKey(key string) (QuickAction, bool) {
	for _, a := range QuickActions {
		if a.Key == key {
			return a, true
		}
	}
	return QuickAction{}, false
}

// RenderQuickActions draws the buttons in a row. Disabled buttons are
// dimmed while a reply is pending.
func RenderQuickActions(theme *styles.Theme, disabled bool, width int) string {
	buttons := make([]string, 0, len(QuickActions))
	for _, a := range QuickActions {
		key := "[" + strings.ToUpper(a.Key) + "]"
		if disabled {
			buttons = append(buttons, theme.QuickActionDisabled.Render(key+" "+a.Label))
			continue
		}
		buttons = append(buttons, theme.QuickAction.Render(theme.QuickActionKey.Render(key)+" "+a.Label))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	if width > 0 && lipgloss.Width(row) > width {
		// Two per row on narrow terminals.
		var rows []string
		for i := 0; i < len(buttons); i += 2 {
			end := i + 2
			if end > len(buttons) {
				end = len(buttons)
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons[i:end]...))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}
	return row
}
