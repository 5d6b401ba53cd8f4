// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lavavago/Agente/internal/commands"
)

// =============================================================================
// TAB COMPLETION HANDLERS
// =============================================================================

// handleTabCompletion completes slash commands and their arguments.
// The first Tab fills in the common prefix, or the only match; further
// presses cycle through the matches.
func (m Model) handleTabCompletion() (tea.Model, tea.Cmd) {
	if len(m.completions) > 0 {
		m.completionIdx = (m.completionIdx + 1) % len(m.completions)
		m.applyCompletion(m.completions[m.completionIdx].Value)
		return m, nil
	}

	input := m.input.Value()
	completions := m.completer.Complete(input, m.input.Position())
	switch len(completions) {
	case 0:
		return m, nil
	case 1:
		m.applyCompletion(completions[0].Value)
		return m, nil
	}

	m.completions = completions
	m.completionIdx = -1
	if prefix := commands.CommonPrefix(completions); len(prefix) > len(currentWord(input)) {
		m.replaceWord(prefix)
	}
	return m, nil
}

// applyCompletion puts value in place of the word being typed. Commands
// that take arguments get a trailing space.
func (m *Model) applyCompletion(value string) {
	m.replaceWord(value)
	if strings.HasPrefix(value, "/") {
		if cmd := m.registry.Get(value); cmd != nil && len(cmd.Args) > 0 && len(m.completions) == 0 {
			m.input.SetValue(m.input.Value() + " ")
			m.input.CursorEnd()
		}
	}
}

func (m *Model) replaceWord(value string) {
	input := m.input.Value()
	start := strings.LastIndex(input, " ") + 1
	m.input.SetValue(input[:start] + value)
	m.input.CursorEnd()
}

func (m *Model) resetCompletions() {
	m.completions = nil
	m.completionIdx = 0
}

// currentWord returns the text after the last space.
func currentWord(input string) string {
	return input[strings.LastIndex(input, " ")+1:]
}

// Completions returns the matches being cycled, if any.
func (m Model) Completions() []commands.Completion {
	return m.completions
}
