// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lavavago/Agente/internal/ui/styles"
	"github.com/Lavavago/Agente/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// DefaultToastDuration is how long info and success toasts stay up.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration is longer so errors can be read.
const ErrorToastDuration = 8 * time.Second

// ToastTickInterval is how often expired toasts are swept.
const ToastTickInterval = 100 * time.Millisecond

// Toast is a non-blocking notification, e.g. a purchase confirmation.
type Toast struct {
	ID        int
	Title     string
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// expired reports whether the toast should be gone at now.
func (t Toast) expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// Remaining returns how long the toast has left at now.
func (t Toast) Remaining(now time.Time) time.Duration {
	d := t.Duration - now.Sub(t.CreatedAt)
	if d < 0 {
		return 0
	}
	return d
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager keeps the visible toasts, newest first.
type ToastManager struct {
	mu        sync.Mutex
	toasts    []Toast
	nextID    int
	maxToasts int

	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewToastManager creates a toast manager showing at most 3 toasts.
func NewToastManager() *ToastManager {
	return &ToastManager{
		nextID:    1,
		maxToasts: 3,
		Now:       time.Now,
	}
}

// Add shows a toast and returns its ID. Errors and warnings stay up
// for ErrorToastDuration.
func (m *ToastManager) Add(kind ToastKind, title, message string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := DefaultToastDuration
	if kind == ToastError || kind == ToastWarning {
		d = ErrorToastDuration
	}

	t := Toast{
		ID:        m.nextID,
		Title:     title,
		Message:   message,
		Kind:      kind,
		CreatedAt: m.Now(),
		Duration:  d,
	}
	m.nextID++

	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return t.ID
}

// Success shows a success toast.
func (m *ToastManager) Success(title, message string) int {
	return m.Add(ToastSuccess, title, message)
}

// Error shows an error toast.
func (m *ToastManager) Error(title, message string) int {
	return m.Add(ToastError, title, message)
}

// Info shows an info toast.
func (m *ToastManager) Info(title, message string) int {
	return m.Add(ToastInfo, title, message)
}

// Dismiss removes a toast by ID.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Tick drops expired toasts and returns how many remain.
func (m *ToastManager) Tick() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.expired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts)
}

// Toasts returns a copy of the visible toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// HasToasts reports whether anything is showing.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically to sweep expired toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(ToastTickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast.
func RenderToast(theme *styles.Theme, t Toast, width int) string {
	maxWidth := 50
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	var box lipgloss.Style
	var icon string
	switch t.Kind {
	case ToastSuccess:
		box, icon = theme.ToastSuccess, styles.StatusIndicators.Success
	case ToastError:
		box, icon = theme.ToastError, styles.StatusIndicators.Error
	case ToastWarning:
		box, icon = theme.ToastError.BorderForeground(styles.Amber).Foreground(styles.Amber), styles.StatusIndicators.Warning
	default:
		box, icon = theme.ToastInfo, styles.StatusIndicators.Info
	}

	inner := maxWidth - 4
	var lines []string
	if t.Title != "" {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(util.TruncateWidth(icon+" "+t.Title, inner)))
	}
	body := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	for _, l := range util.WrapWidth(t.Message, inner) {
		lines = append(lines, body.Render(l))
	}
	if t.Title == "" && len(lines) > 0 {
		lines[0] = icon + " " + lines[0]
	}

	return box.Render(strings.Join(lines, "\n"))
}

// RenderToastStack renders toasts stacked vertically, right-aligned to width.
func RenderToastStack(theme *styles.Theme, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(theme, t, width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}
