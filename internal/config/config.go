// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Lavavago/Agente/internal/session"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is everything agente reads from ~/.agente/config.toml.
type Config struct {
	Agent   AgentConfig   `toml:"agent" json:"agent"`
	Catalog CatalogConfig `toml:"catalog" json:"catalog"`
	Audio   AudioConfig   `toml:"audio" json:"audio"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Log     LogConfig     `toml:"log" json:"log"`
	Export  ExportConfig  `toml:"export" json:"export"`
}

// AgentConfig controls how the assistant answers.
type AgentConfig struct {
	// ThinkingDelayMs is the simulated thinking time before each reply.
	// 0 answers immediately.
	ThinkingDelayMs int `toml:"thinking_delay_ms" json:"thinking_delay_ms"`
	// Welcome is the first agent message of a session
	Welcome string `toml:"welcome" json:"welcome"`
}

// CatalogConfig selects the product catalog.
type CatalogConfig struct {
	// Path to a .toml or .json catalog file (empty = built-in catalog)
	Path string `toml:"path" json:"path"`
}

// AudioConfig is the initial state of the audio controls.
type AudioConfig struct {
	Enabled bool    `toml:"enabled" json:"enabled"`
	Volume  float64 `toml:"volume" json:"volume"`
	// SpeakMs is how long the speaking indicator stays on after a reply
	SpeakMs int `toml:"speak_ms" json:"speak_ms"`
}

type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
	// Compact hides product descriptions in cards
	Compact bool `toml:"compact" json:"compact"`
}

type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `toml:"level" json:"level"`
	// File is the log path (empty = ~/.agente/agente.log)
	File string `toml:"file" json:"file"`
}

type ExportConfig struct {
	// Dir is where /export writes files
	Dir string `toml:"dir" json:"dir"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Agent:  AgentConfig{ThinkingDelayMs: 1500, Welcome: session.DefaultWelcome},
		Audio:  AudioConfig{Enabled: true, Volume: 1.0, SpeakMs: 1000},
		UI:     UIConfig{Theme: "auto"},
		Log:    LogConfig{Level: "info"},
		Export: ExportConfig{Dir: "."},
	}
}

// ThinkingDelay is Agent.ThinkingDelayMs as a duration.
func (c *Config) ThinkingDelay() time.Duration {
	return time.Duration(c.Agent.ThinkingDelayMs) * time.Millisecond
}

// SpeakFor is Audio.SpeakMs as a duration.
func (c *Config) SpeakFor() time.Duration {
	return time.Duration(c.Audio.SpeakMs) * time.Millisecond
}

// LogPath returns Log.File, or agente.log under ConfigDir when unset.
// It is "" when no home directory can be found.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return inConfigDir("agente.log")
}

// Clone returns a copy; Config holds no pointers.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// ConfigDir is ~/.agente.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".agente"), nil
}

// ConfigPathTOML is ~/.agente/config.toml.
func ConfigPathTOML() (string, error) {
	return configFile("config.toml")
}

// ConfigPathJSON is ~/.agente/config.json, read when no TOML file exists.
func ConfigPathJSON() (string, error) {
	return configFile("config.json")
}

// EnsureConfigDir creates ~/.agente if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

func configFile(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func inConfigDir(name string) string {
	p, err := configFile(name)
	if err != nil {
		return ""
	}
	return p
}
