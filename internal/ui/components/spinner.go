// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lavavago/Agente/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingText is shown next to the spinner while a reply is pending.
const TypingText = "Agente está escribiendo..."

// TypingIndicator is the spinner shown while the agent works on a reply.
type TypingIndicator struct {
	spinner   spinner.Model
	theme     *styles.Theme
	text      string
	active    bool
	startTime time.Time
}

// NewTypingIndicator creates an inactive indicator using the dots spinner.
func NewTypingIndicator(theme *styles.Theme) TypingIndicator {
	s := spinner.New()
	s.Spinner = toBubblesSpinner(styles.DotsSpinner)
	s.Style = theme.Spinner
	return TypingIndicator{
		spinner: s,
		theme:   theme,
		text:    TypingText,
	}
}

func toBubblesSpinner(cfg styles.SpinnerConfig) spinner.Spinner {
	return spinner.Spinner{Frames: cfg.Frames, FPS: cfg.Duration()}
}

// Start activates the indicator and returns the first tick.
func (t *TypingIndicator) Start() tea.Cmd {
	t.active = true
	t.startTime = time.Now()
	return t.spinner.Tick
}

// Stop hides the indicator. Pending ticks are ignored afterwards.
func (t *TypingIndicator) Stop() {
	t.active = false
}

// IsActive reports whether the indicator is showing.
func (t TypingIndicator) IsActive() bool {
	return t.active
}

// Elapsed returns how long the indicator has been showing.
func (t TypingIndicator) Elapsed() time.Duration {
	if !t.active {
		return 0
	}
	return time.Since(t.startTime)
}

// Update advances the animation. Ticks for a stopped indicator are dropped
// so the tick loop ends.
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	if _, ok := msg.(spinner.TickMsg); !ok {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator, or nothing when inactive.
func (t TypingIndicator) View() string {
	if !t.active {
		return ""
	}
	return t.spinner.View() + " " + t.theme.ThinkingText.Render(t.text)
}
