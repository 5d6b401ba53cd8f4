// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lavavago/Agente/internal/model"
	"github.com/Lavavago/Agente/internal/ui/styles"
	"github.com/Lavavago/Agente/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// TimeFormat is how message timestamps are shown.
const TimeFormat = "15:04"

// RenderMessage draws one conversation entry. User messages sit on the
// right; agent messages on the left, followed by their product grid or the
// empty-state line. Compact leaves product descriptions out.
func RenderMessage(theme *styles.Theme, msg *model.Message, width int, compact bool) string {
	if msg == nil {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width
	}

	header := theme.SenderLabel.Render(msg.Sender.DisplayName())
	if !msg.Timestamp.IsZero() {
		header += " " + theme.Timestamp.Render(msg.Timestamp.Format(TimeFormat))
	}

	pres := msg.Presentation()
	var parts []string
	parts = append(parts, header)

	if pres.ShowText {
		// Bubbles add two columns of padding, agent bubbles two more of border.
		textWidth := bubbleWidth - 4
		text := strings.Join(wrapParagraphs(msg.Text, textWidth), "\n")
		if msg.IsUser() {
			parts = append(parts, theme.UserBubble.Render(text))
		} else {
			parts = append(parts, theme.AgentBubble.Render(text))
		}
	}

	if pres.ShowGrid {
		parts = append(parts, RenderProductGrid(theme, msg.Products, width, compact))
	}
	if pres.ShowEmptyState {
		parts = append(parts, theme.EmptyState.Render(model.EmptyStateText))
	}

	if msg.IsUser() {
		block := lipgloss.JoinVertical(lipgloss.Right, parts...)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderConversation draws every message separated by blank lines.
func RenderConversation(theme *styles.Theme, msgs []*model.Message, width int, compact bool) string {
	rendered := make([]string, 0, len(msgs))
	for _, m := range msgs {
		rendered = append(rendered, RenderMessage(theme, m, width, compact))
	}
	return strings.Join(rendered, "\n\n")
}

// wrapParagraphs wraps each line of text separately so explicit line
// breaks survive.
func wrapParagraphs(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		wrapped := util.WrapWidth(para, width)
		if len(wrapped) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, wrapped...)
	}
	return out
}
