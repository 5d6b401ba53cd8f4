// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Every color adapts to light and dark terminal backgrounds.
type adaptive = lipgloss.AdaptiveColor

// =============================================================================
// PALETTE
// =============================================================================

var (
	// Brand
	Indigo     = adaptive{Light: "#4F46E5", Dark: "#818CF8"} // header, agent accents
	IndigoDeep = adaptive{Light: "#3730A3", Dark: "#312E81"} // header background
	Cyan       = adaptive{Light: "#0891B2", Dark: "#22D3EE"} // commands, form product
	Blue       = adaptive{Light: "#2563EB", Dark: "#3B82F6"} // buy actions, user bubble border

	// Semantic
	Green = adaptive{Light: "#15803D", Dark: "#22C55E"} // DISPONIBLE, success, audio on
	Red   = adaptive{Light: "#B91C1C", Dark: "#EF4444"} // AGOTADO, discount badge, errors
	Amber = adaptive{Light: "#D97706", Dark: "#FBBF24"} // warnings, speaking

	// Surfaces
	Surface    = adaptive{Light: "#FFFFFF", Dark: "#1E1E2E"}
	SurfaceDim = adaptive{Light: "#F5F5F5", Dark: "#181825"}
	Overlay    = adaptive{Light: "#E5E5E5", Dark: "#313244"} // borders, separators

	// Text
	TextPrimary   = adaptive{Light: "#1F2937", Dark: "#CDD6F4"}
	TextSecondary = adaptive{Light: "#6B7280", Dark: "#A6ADC8"}
	TextMuted     = adaptive{Light: "#9CA3AF", Dark: "#6C7086"} // hints, struck prices
	TextInverse   = adaptive{Light: "#FFFFFF", Dark: "#FFFFFF"}
	Price         = adaptive{Light: "#1D4ED8", Dark: "#93C5FD"}

	// Message bubbles
	UserBubbleBg      = adaptive{Light: "#DBEAFE", Dark: "#1D4ED8"}
	UserBubbleFg      = adaptive{Light: "#1E40AF", Dark: "#E0F2FE"}
	AgentBubbleBg     = adaptive{Light: "#EEF2FF", Dark: "#2E2B4F"}
	AgentBubbleFg     = adaptive{Light: "#3730A3", Dark: "#E0E7FF"}
	AgentBubbleBorder = adaptive{Light: "#C7D2FE", Dark: "#818CF8"}
)

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet holds the ASCII marks drawn next to toasts and CLI
// results, so status reads without color.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

// StatusIndicators is the indicator set in use.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// RenderSuccess renders "[OK] message" in bold green.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Green).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders "[X] message" in bold red.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Red).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}
