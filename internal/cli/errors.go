// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error display and exit codes for the CLI commands.
//
// Handlers return errors; main decides how to show them and which code to
// exit with.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/Lavavago/Agente/internal/config"
	"github.com/Lavavago/Agente/internal/order"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	// ExitUsageError is for bad arguments and unknown commands.
	ExitUsageError = 2
	// ExitConfigError is for unreadable or invalid configuration.
	ExitConfigError = 3
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError is a wrong invocation, like a missing argument.
type UsageError struct {
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nEjemplo: %s", e.Reason, e.Example)
	}
	return e.Reason
}

// ConfigError wraps a failure to load or save configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuración: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err to w, as a JSON error envelope in jsonMode.
func DisplayError(w io.Writer, command string, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		NewJSONErrorResponse(command, err).Write(w)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	var unknown *UnknownCommandError
	if errors.As(err, &usage) || errors.As(err, &unknown) || errors.Is(err, order.ErrValidation) {
		return ExitUsageError
	}

	var cfgErr *ConfigError
	var cfgValidation config.ValidateErrors
	if errors.As(err, &cfgErr) || errors.As(err, &cfgValidation) {
		return ExitConfigError
	}

	return ExitGeneralError
}
