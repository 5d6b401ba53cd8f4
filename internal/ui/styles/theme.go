// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects light or dark colors.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode parses a configured theme name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeDark:
		return ModeDark, nil
	case ModeLight:
		return ModeLight, nil
	default:
		return ModeAuto, fmt.Errorf("unknown theme %q", s)
	}
}

// Theme is the set of lipgloss styles the chat view draws with, plus the
// window size it was last laid out for.
type Theme struct {
	// Terminal capabilities
	Mode         Mode
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	Avatar         lipgloss.Style
	AvatarThinking lipgloss.Style

	// ==========================================================================
	// AUDIO BAR STYLES
	// ==========================================================================

	AudioOn       lipgloss.Style
	AudioOff      lipgloss.Style
	AudioSpeaking lipgloss.Style
	AudioVolume   lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	AgentBubble lipgloss.Style
	SenderLabel lipgloss.Style
	Timestamp   lipgloss.Style
	EmptyState  lipgloss.Style

	// ==========================================================================
	// PRODUCT CARD STYLES
	// ==========================================================================

	Card          lipgloss.Style
	CardSoldOut   lipgloss.Style
	CardTitle     lipgloss.Style
	CardDesc      lipgloss.Style
	CardPrice     lipgloss.Style
	CardBasePrice lipgloss.Style
	CardDiscount  lipgloss.Style
	TagAvailable  lipgloss.Style
	TagSoldOut    lipgloss.Style
	CardInitials  lipgloss.Style

	// ==========================================================================
	// QUICK ACTION STYLES
	// ==========================================================================

	QuickAction         lipgloss.Style
	QuickActionKey      lipgloss.Style
	QuickActionDisabled lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	InputDisabled  lipgloss.Style
	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style

	// ==========================================================================
	// PURCHASE FORM STYLES
	// ==========================================================================

	FormBox        lipgloss.Style
	FormTitle      lipgloss.Style
	FormProduct    lipgloss.Style
	FormSection    lipgloss.Style
	FormLabel      lipgloss.Style
	FormLabelFocus lipgloss.Style
	FormTotal      lipgloss.Style
	FormHint       lipgloss.Style

	// ==========================================================================
	// TOAST AND HELP STYLES
	// ==========================================================================

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
	HelpBox      lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme builds every style for mode against the detected color profile.
// ModeAuto asks the terminal for its background.
func NewTheme(mode Mode) *Theme {
	t := &Theme{
		Mode:         mode,
		ColorProfile: termenv.ColorProfile(),
	}

	switch mode {
	case ModeDark:
		t.IsDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		t.IsDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		t.Mode = ModeAuto
		t.IsDark = termenv.HasDarkBackground()
	}

	t.initStyles()
	return t
}

// DefaultTheme returns an auto-detected theme.
func DefaultTheme() *Theme {
	return NewTheme(ModeAuto)
}

func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(IndigoDeep).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextInverse).
		Italic(true)

	t.Avatar = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.AvatarThinking = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	// Audio bar
	t.AudioOn = lipgloss.NewStyle().Foreground(Blue)
	t.AudioOff = lipgloss.NewStyle().Foreground(TextMuted)
	t.AudioSpeaking = lipgloss.NewStyle().Foreground(Green).Bold(true)
	t.AudioVolume = lipgloss.NewStyle().Foreground(TextSecondary)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1).
		MarginLeft(4)

	t.AgentBubble = lipgloss.NewStyle().
		Foreground(AgentBubbleFg).
		Background(AgentBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AgentBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.SenderLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Product cards
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CardSoldOut = t.Card.
		BorderForeground(Red).
		Faint(true)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.CardDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CardPrice = lipgloss.NewStyle().
		Foreground(Price).
		Bold(true)

	t.CardBasePrice = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true)

	t.CardDiscount = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Red).
		Bold(true)

	t.TagAvailable = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Green).
		Bold(true)

	t.TagSoldOut = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Red).
		Bold(true)

	t.CardInitials = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	// Quick actions
	t.QuickAction = lipgloss.NewStyle().
		Foreground(Indigo).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 1)

	t.QuickActionKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.QuickActionDisabled = t.QuickAction.
		Foreground(TextMuted).
		BorderForeground(Overlay)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.InputDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Purchase form
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 2)

	t.FormTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.FormProduct = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.FormSection = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true).
		Underline(true)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(18)

	t.FormLabelFocus = t.FormLabel.
		Foreground(Indigo).
		Bold(true)

	t.FormTotal = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Toasts
	toast := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	t.ToastSuccess = toast.BorderForeground(Green).Foreground(Green)
	t.ToastError = toast.BorderForeground(Red).Foreground(Red)
	t.ToastInfo = toast.BorderForeground(Blue).Foreground(Blue)

	// Help
	t.HelpBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize records the window size after a resize.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode buckets the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < narrowBelow:
		return LayoutNarrow
	case t.Width < wideFrom:
		return LayoutMedium
	}
	return LayoutWide
}

// CardColumns returns how many product cards fit side by side.
func (t *Theme) CardColumns() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return 1
	case LayoutMedium:
		return 2
	default:
		return 3
	}
}

// LayoutMode decides how many product cards share a row.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota
	LayoutMedium
	LayoutWide
)

// Column thresholds between the layout modes.
const (
	narrowBelow = 60
	wideFrom    = 100
)
