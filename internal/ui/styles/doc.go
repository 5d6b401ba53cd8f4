// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the agente TUI.
//
// Colors are lipgloss.AdaptiveColor values so they follow the terminal
// background. The Theme struct groups the lipgloss styles every component
// renders with; NewTheme picks light or dark from the configured mode.
//
// # Key Types
//
//   - Theme: all styled components
//   - Mode: auto, dark or light
//   - SpinnerConfig: frames for the typing indicator
//   - AvatarFrames: the ASCII avatar per expression
package styles
