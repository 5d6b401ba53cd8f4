// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lavavago/Agente/internal/commands"
	"github.com/Lavavago/Agente/internal/ui/components"
	"github.com/Lavavago/Agente/internal/util"
)

// =============================================================================
// MAIN VIEW
// =============================================================================

// View renders the chat screen: header, conversation (or the open modal),
// quick actions, status line and input.
func (m Model) View() string {
	thinking := m.sess.IsPending()

	header := components.NewHeader(m.theme)
	header.SetWidth(m.width)
	header.SetThinking(thinking)
	header.SetAudio(m.sess.Audio())

	main := m.viewport.View()
	switch {
	case m.form != nil:
		main = m.placeCenter(m.form.View())
	case m.showHelp:
		main = m.placeCenter(m.renderHelp())
	}
	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		main = overlayBottom(main, components.RenderToastStack(m.theme, toasts, m.width))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header.View(),
		main,
		components.RenderQuickActions(m.theme, thinking || m.form != nil, m.width),
		m.renderStatus(),
		m.renderInput(thinking),
	)
}

// =============================================================================
// PARTS
// =============================================================================

func (m Model) renderInput(thinking bool) string {
	var line string
	switch {
	case m.form != nil:
		line = m.theme.InputDisabled.Render("Completa el formulario de compra...")
	case thinking:
		line = m.theme.InputDisabled.Render("Esperando respuesta del agente... (Esc para cancelar)")
	default:
		line = m.input.View()
	}
	return m.theme.InputContainer.Width(m.width).Render(line)
}

// renderStatus shows the typing indicator, or the completions being
// cycled, or the key hints.
func (m Model) renderStatus() string {
	if m.typing.IsActive() {
		return m.typing.View()
	}
	if len(m.completions) > 0 {
		return m.renderCompletions()
	}
	return m.theme.ShortcutDesc.Render(util.TruncateWidth(HintLine(m.keys.ShortHelp()), m.width))
}

func (m Model) renderCompletions() string {
	parts := make([]string, 0, len(m.completions))
	for i, c := range m.completions {
		display := c.Display
		if i == m.completionIdx {
			parts = append(parts, m.theme.ShortcutKey.Render(display))
			continue
		}
		parts = append(parts, m.theme.ShortcutDesc.Render(display))
	}
	return util.TruncateWidth(strings.Join(parts, "  "), m.width)
}

func (m Model) renderHelp() string {
	return m.theme.HelpBox.Render(strings.TrimRight(commands.GenerateHelpText(m.registry), "\n"))
}

// placeCenter centers content in the viewport area.
func (m Model) placeCenter(content string) string {
	return lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, content)
}

// overlayBottom draws top over the last lines of base, keeping base's
// height.
func overlayBottom(base, top string) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	if len(topLines) > len(baseLines) {
		topLines = topLines[len(topLines)-len(baseLines):]
	}
	start := len(baseLines) - len(topLines)
	copy(baseLines[start:], topLines)
	return strings.Join(baseLines, "\n")
}
