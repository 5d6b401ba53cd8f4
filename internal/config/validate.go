// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"slices"
	"strings"
)

// MaxThinkingDelayMs caps the configurable thinking delay.
const MaxThinkingDelayMs = 60000

var (
	logLevels = []string{"debug", "info", "warn", "error"}
	themes    = []string{"auto", "dark", "light"}
)

// ValidationError is one rejected setting, named by its dotted key.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateErrors collects every ValidationError found in one pass.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Error()
	}
	return strings.Join(parts, "; ")
}

// Validate checks ranges and enumerations. The error, when not nil, is a
// ValidateErrors in key order.
func (c *Config) Validate() error {
	var errs ValidateErrors
	check := func(ok bool, field, format string, args ...any) {
		if !ok {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
		}
	}

	delay := c.Agent.ThinkingDelayMs
	check(delay >= 0 && delay <= MaxThinkingDelayMs, "agent.thinking_delay_ms",
		"%d is outside 0..%d", delay, MaxThinkingDelayMs)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume",
		"%v is outside 0..1", c.Audio.Volume)
	check(c.Audio.SpeakMs >= 0, "audio.speak_ms", "%d is negative", c.Audio.SpeakMs)
	check(slices.Contains(logLevels, strings.ToLower(c.Log.Level)), "log.level",
		"%q is not one of %s", c.Log.Level, strings.Join(logLevels, ", "))
	check(slices.Contains(themes, strings.ToLower(c.UI.Theme)), "ui.theme",
		"%q is not one of %s", c.UI.Theme, strings.Join(themes, ", "))

	if len(errs) == 0 {
		return nil
	}
	return errs
}
