// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lavavago/Agente/internal/session"
)

// withHome points the home directory at a fresh temp dir.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 1500*time.Millisecond, cfg.ThinkingDelay())
	require.Equal(t, time.Second, cfg.SpeakFor())
	require.Equal(t, session.DefaultWelcome, cfg.Agent.Welcome)
	require.True(t, cfg.Audio.Enabled)
	require.Equal(t, 1.0, cfg.Audio.Volume)
	require.Equal(t, "auto", cfg.UI.Theme)
	require.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFiles(t *testing.T) {
	withHome(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default().Agent, cfg.Agent)
}

func TestLogPath(t *testing.T) {
	home := withHome(t)
	cfg := Default()
	require.Equal(t, filepath.Join(home, ".agente", "agente.log"), cfg.LogPath())

	cfg.Log.File = "/tmp/x.log"
	require.Equal(t, "/tmp/x.log", cfg.LogPath())
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoad_TOML(t *testing.T) {
	home := withHome(t)
	writeFile(t, filepath.Join(home, ".agente", "config.toml"), `
[agent]
thinking_delay_ms = 0

[audio]
enabled = false
volume = 0.0

[ui]
theme = "dark"
`)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Agent.ThinkingDelayMs)
	require.False(t, cfg.Audio.Enabled)
	require.Equal(t, 0.0, cfg.Audio.Volume)
	require.Equal(t, "dark", cfg.UI.Theme)
	// untouched keys keep defaults
	require.Equal(t, session.DefaultWelcome, cfg.Agent.Welcome)
	require.Equal(t, 1000, cfg.Audio.SpeakMs)
}

func TestLoad_JSONFallback(t *testing.T) {
	home := withHome(t)
	writeFile(t, filepath.Join(home, ".agente", "config.json"),
		`{"agent": {"welcome": "Hola"}, "log": {"level": "debug"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Hola", cfg.Agent.Welcome)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 1500, cfg.Agent.ThinkingDelayMs)
}

func TestLoad_BrokenFileFallsBackToDefaults(t *testing.T) {
	home := withHome(t)
	writeFile(t, filepath.Join(home, ".agente", "config.toml"), "[agent\nthinking_delay_ms = ")

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, 1500, cfg.Agent.ThinkingDelayMs)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	withHome(t)
	path := filepath.Join(t.TempDir(), "agente.toml")
	writeFile(t, path, "[audio]\nvolume = 2.0\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	require.Equal(t, "audio.volume", verrs[0].Field)
}

func TestLoadFromPath_JSON(t *testing.T) {
	withHome(t)
	path := filepath.Join(t.TempDir(), "agente.json")
	writeFile(t, path, `{"catalog": {"path": "muebles.toml"}, "ui": {"theme": ""}}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "muebles.toml", cfg.Catalog.Path)
	require.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoadFromPath_Missing(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	withHome(t)
	t.Setenv("AGENTE_CATALOG", "/srv/catalogo.json")
	t.Setenv("AGENTE_THINKING_DELAY_MS", "250")
	t.Setenv("AGENTE_LOG_LEVEL", "DEBUG")
	t.Setenv("AGENTE_THEME", "Light")
	t.Setenv("AGENTE_AUDIO", "off")
	t.Setenv("AGENTE_EXPORT_DIR", "/tmp/exports")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/srv/catalogo.json", cfg.Catalog.Path)
	require.Equal(t, 250*time.Millisecond, cfg.ThinkingDelay())
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "light", cfg.UI.Theme)
	require.False(t, cfg.Audio.Enabled)
	require.Equal(t, "/tmp/exports", cfg.Export.Dir)
}

func TestApplyEnvOverrides_BadNumberIgnored(t *testing.T) {
	t.Setenv("AGENTE_THINKING_DELAY_MS", "rapido")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	require.Equal(t, 1500, cfg.Agent.ThinkingDelayMs)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"defaults", func(c *Config) {}, nil},
		{"negative delay", func(c *Config) { c.Agent.ThinkingDelayMs = -1 }, []string{"agent.thinking_delay_ms"}},
		{"huge delay", func(c *Config) { c.Agent.ThinkingDelayMs = MaxThinkingDelayMs + 1 }, []string{"agent.thinking_delay_ms"}},
		{"volume above one", func(c *Config) { c.Audio.Volume = 1.5 }, []string{"audio.volume"}},
		{"negative speak", func(c *Config) { c.Audio.SpeakMs = -5 }, []string{"audio.speak_ms"}},
		{"bad level and theme", func(c *Config) {
			c.Log.Level = "loud"
			c.UI.Theme = "neon"
		}, []string{"log.level", "ui.theme"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.fields == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() = %v, want ValidateErrors", err)
			}
			if len(verrs) != len(tc.fields) {
				t.Fatalf("got %d errors (%v), want %d", len(verrs), verrs, len(tc.fields))
			}
			for i, f := range tc.fields {
				if verrs[i].Field != f {
					t.Errorf("error %d field = %q, want %q", i, verrs[i].Field, f)
				}
			}
		})
	}
}

// =============================================================================
// GET/SET
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("agent.thinking_delay_ms")
	require.NoError(t, err)
	require.Equal(t, 1500, v)

	require.NoError(t, cfg.Set("agent.thinking_delay_ms", "200"))
	require.Equal(t, 200, cfg.Agent.ThinkingDelayMs)

	require.NoError(t, cfg.Set("audio.volume", "0.5"))
	require.Equal(t, 0.5, cfg.Audio.Volume)

	require.NoError(t, cfg.Set("audio.enabled", "no"))
	require.False(t, cfg.Audio.Enabled)

	require.NoError(t, cfg.Set("ui.compact", true))
	require.True(t, cfg.UI.Compact)

	require.NoError(t, cfg.Set("ui.theme", "light"))
	require.Equal(t, "light", cfg.UI.Theme)

	require.Error(t, cfg.Set("agent.thinking_delay_ms", "lento"))
	require.Error(t, cfg.Set("ui.nope", "x"))
	_, err = cfg.Get("audio")
	require.Error(t, err)
	_, err = cfg.Get("")
	require.Error(t, err)
}

func TestGetAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) failed: %v", key, err)
		}
	}
}

func TestNormalizeFieldName(t *testing.T) {
	require.Equal(t, "ThinkingDelayMs", normalizeFieldName("thinking_delay_ms"))
	require.Equal(t, "SpeakMs", normalizeFieldName("speak-ms"))
}

// =============================================================================
// SAVING
// =============================================================================

func TestSaveRoundTrip(t *testing.T) {
	withHome(t)
	cfg := Default()
	cfg.Agent.ThinkingDelayMs = 300
	cfg.UI.Theme = "dark"
	cfg.Audio.Volume = 0.25

	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, 300, loaded.Agent.ThinkingDelayMs)
	require.Equal(t, "dark", loaded.UI.Theme)
	require.Equal(t, 0.25, loaded.Audio.Volume)
}

func TestSaveJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agente.json")
	cfg := Default()
	cfg.Export.Dir = "/tmp/salidas"
	require.NoError(t, SaveJSON(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/salidas", loaded.Export.Dir)
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.UI.Theme = "light"
	require.Equal(t, "auto", cfg.UI.Theme)
}
