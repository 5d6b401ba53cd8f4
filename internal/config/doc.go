// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, validates and saves the agente settings file.
//
// Settings live in TOML (or JSON) under ~/.agente. Environment variables
// override the file and Validate reports every bad value at once.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - AgentConfig: thinking delay and welcome message
//   - AudioConfig: initial state of the audio controls
//   - ValidateErrors: every problem found by Validate
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (AGENTE_*)
//   - ~/.agente/config.toml
//   - ~/.agente/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, "warning:", err)
//	}
//
// A single explicit file, as --config uses it, fails hard instead:
//
//	cfg, err := config.LoadFromPath("agente.json")
//
// Dot-notation access, as the config command uses it:
//
//	v, _ := cfg.Get("audio.volume")
//	_ = cfg.Set("ui.theme", "dark")
package config
