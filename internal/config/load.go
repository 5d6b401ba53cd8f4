// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Lavavago/Agente/internal/util"
)

// =============================================================================
// LOADING
// =============================================================================

// Load reads ~/.agente/config.toml, or config.json when there is no TOML
// file, then applies AGENTE_* overrides. With neither file the defaults are
// used.
//
// A file that fails to decode does not stop loading: Load returns the
// defaults together with the decode error so callers can warn and go on.
// Only an invalid result (after overrides) returns a nil Config.
func Load() (*Config, error) {
	var fileErr error
	for _, locate := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := locate()
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		cfg := Default()
		if err := decodeFile(cfg, path); err != nil {
			fileErr = err
			continue
		}
		return finish(cfg)
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, fileErr
}

// LoadFromPath reads one explicit file (JSON by extension, TOML otherwise).
// Unlike Load, every failure is fatal, a missing file included.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(cfg, path); err != nil {
		return nil, err
	}
	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// LoadJSON is LoadTOML for JSON files.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func decodeFile(cfg *Config, path string) error {
	if isJSON(path) {
		return LoadJSON(cfg, path)
	}
	return LoadTOML(cfg, path)
}

// finish layers the environment on cfg, restores blanked settings and
// validates the result.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults puts back the settings a file set to "". A zero delay or
// volume is a real choice and stays.
func fillDefaults(cfg *Config) {
	def := Default()
	if strings.TrimSpace(cfg.Agent.Welcome) == "" {
		cfg.Agent.Welcome = def.Agent.Welcome
	}
	if cfg.Audio.SpeakMs == 0 {
		cfg.Audio.SpeakMs = def.Audio.SpeakMs
	}
	cfg.UI.Theme = cmp.Or(cfg.UI.Theme, def.UI.Theme)
	cfg.Log.Level = cmp.Or(cfg.Log.Level, def.Log.Level)
	cfg.Export.Dir = cmp.Or(cfg.Export.Dir, def.Export.Dir)
}

// =============================================================================
// SAVING
// =============================================================================

// tomlHeader opens every saved TOML file.
const tomlHeader = "# agente configuration\n# Written by `agente config`; comments are not preserved.\n\n"

// Save writes cfg to ~/.agente/config.toml.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path as TOML, replacing the file atomically.
func SaveTOML(cfg *Config, path string) error {
	buf := bytes.NewBufferString(tomlHeader)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeConfig(path, buf.Bytes())
}

// SaveJSON writes cfg to path as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeConfig(path, append(data, '\n'))
}

func writeConfig(path string, data []byte) error {
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// String renders the configuration as JSON, for debug logs.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
