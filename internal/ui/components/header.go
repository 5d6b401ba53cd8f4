// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lavavago/Agente/internal/session"
	"github.com/Lavavago/Agente/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header texts.
const (
	HeaderTitle    = "ServicioAgente - Consulta con IA"
	HeaderSubtitle = "Tu asistente de muebles y decoración"
)

// Header is the title bar with the avatar and the audio controls.
type Header struct {
	Width    int
	Thinking bool
	Audio    session.Audio
	theme    *styles.Theme
}

// NewHeader creates a header with audio on at full volume.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Width: 80,
		Audio: session.Audio{Enabled: true, Volume: 1},
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetThinking switches the avatar to its thinking face.
func (h *Header) SetThinking(thinking bool) {
	h.Thinking = thinking
}

// SetAudio updates the audio bar.
func (h *Header) SetAudio(a session.Audio) {
	h.Audio = a
}

// Expression picks the avatar face. Thinking wins over speaking.
func (h *Header) Expression() styles.Expression {
	switch {
	case h.Thinking:
		return styles.ExpressionThinking
	case h.Audio.Speaking:
		return styles.ExpressionSpeaking
	default:
		return styles.ExpressionNeutral
	}
}

// View renders the full header: avatar on the left, titles and audio bar
// on the right. Narrow terminals get ViewCompact.
func (h *Header) View() string {
	if h.Width > 0 && h.Width < 60 {
		return h.ViewCompact()
	}

	avatarStyle := h.theme.Avatar
	if h.Thinking {
		avatarStyle = h.theme.AvatarThinking
	}
	avatar := avatarStyle.Render(strings.Join(styles.AvatarLines(h.Expression()), "\n"))

	right := lipgloss.JoinVertical(lipgloss.Left,
		h.theme.HeaderTitle.Render(HeaderTitle),
		h.theme.HeaderSubtitle.Render(HeaderSubtitle),
		"",
		h.AudioBar(),
	)

	content := lipgloss.JoinHorizontal(lipgloss.Top, avatar, "  ", right)
	style := h.theme.Header
	if h.Width > 0 {
		style = style.Width(h.Width)
	}
	return style.Render(content)
}

// ViewCompact renders a single line header.
func (h *Header) ViewCompact() string {
	line := h.theme.HeaderTitle.Render("ServicioAgente") + "  " + h.AudioBar()
	style := h.theme.Header
	if h.Width > 0 {
		style = style.Width(h.Width)
	}
	return style.Render(line)
}

// AudioBar renders the audio status and, while enabled, the volume.
func (h *Header) AudioBar() string {
	a := h.Audio
	switch {
	case a.Speaking:
		return h.theme.AudioSpeaking.Render(a.Label()) + " " + h.volume()
	case a.Enabled:
		return h.theme.AudioOn.Render(a.Label()) + " " + h.volume()
	default:
		return h.theme.AudioOff.Render(a.Label())
	}
}

func (h *Header) volume() string {
	return h.theme.AudioVolume.Render(fmt.Sprintf("Vol %d%%", h.Audio.VolumePercent()))
}
