// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig is a frame animation played at FPS frames per second.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration is the time each frame stays up.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// DotsSpinner is the typing indicator.
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// =============================================================================
// AVATAR
// =============================================================================

// Expression is the face the avatar shows.
type Expression string

const (
	ExpressionNeutral  Expression = "neutral"
	ExpressionThinking Expression = "thinking"
	ExpressionSpeaking Expression = "speaking"
)

// AvatarFrames holds the ASCII avatar for each expression. Every frame has
// the same number of lines and the same width.
var AvatarFrames = map[Expression][]string{
	ExpressionNeutral: {
		" .---. ",
		"| o o |",
		"|  -  |",
		" '---' ",
	},
	ExpressionThinking: {
		" .---.?",
		"| o O |",
		"|  ~  |",
		" '---' ",
	},
	ExpressionSpeaking: {
		" .---. ",
		"| ^ ^ |",
		"|  O  |",
		" '---' ",
	},
}

// AvatarLines returns the avatar for an expression, falling back to neutral.
func AvatarLines(e Expression) []string {
	if lines, ok := AvatarFrames[e]; ok {
		return lines
	}
	return AvatarFrames[ExpressionNeutral]
}
