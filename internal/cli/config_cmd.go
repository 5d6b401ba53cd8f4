// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command.
//
// Command: config
//
// Subcommands:
//   show               Effective configuration (file + env + flags)
//   get <key>          One value, e.g. agent.thinking_delay_ms
//   set <key> <value>  Change a value in the config file
//   reset              Write the defaults to the config file
//   keys               List every key
//   path               Config file location
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lavavago/Agente/internal/config"
	"github.com/Lavavago/Agente/internal/ui/styles"
)

// HandleConfig handles "agente config".
func HandleConfig(args Args) error {
	path := args.ConfigPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return &ConfigError{Err: err}
		}
		path = p
	}
	return runConfig(os.Stdout, path, args)
}

func runConfig(w io.Writer, path string, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(w, path, args)
	case "get":
		return configGet(w, path, args)
	case "set":
		return configSet(w, path, args.ConfigKey, args.ConfigVal)
	case "reset":
		return configReset(w, path)
	case "keys":
		for _, k := range config.GetAllKeys() {
			fmt.Fprintln(w, k)
		}
		return nil
	case "path":
		if args.JSON {
			_, err := os.Stat(path)
			return NewJSONResponse("config path", map[string]interface{}{
				"path":   path,
				"exists": err == nil,
			}).Write(w)
		}
		fmt.Fprintln(w, path)
		return nil
	default:
		return &UsageError{
			Reason:  fmt.Sprintf("subcomando de config desconocido: %s", args.Subcommand),
			Example: "agente config set ui.theme dark",
		}
	}
}

// effectiveConfig is the file at path with env overrides and flags applied.
func effectiveConfig(path string, args Args) (*config.Config, error) {
	cfg, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	applyFlags(cfg, args)
	return cfg, nil
}

// readConfigFile decodes path over the defaults without env overrides, so
// saving it back does not persist the environment. A missing file is the
// defaults.
func readConfigFile(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	var err error
	if isJSONPath(path) {
		err = config.LoadJSON(cfg, path)
	} else {
		err = config.LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return cfg, nil
}

func writeConfigFile(cfg *config.Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &ConfigError{Err: err}
	}
	var err error
	if isJSONPath(path) {
		err = config.SaveJSON(cfg, path)
	} else {
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

// =============================================================================
// SUBCOMMANDS
// =============================================================================

func configShow(w io.Writer, path string, args Args) error {
	cfg, err := effectiveConfig(path, args)
	if err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config show", map[string]interface{}{
			"path":   path,
			"config": cfg,
		}).Write(w)
	}

	fmt.Fprintln(w, TitleStyle.Render("Configuración de agente"))
	fmt.Fprintln(w, RenderSeparator())
	for _, key := range config.GetAllKeys() {
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %-26s %v\n", key, val)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", RenderLabel("archivo"), path)
	return nil
}

func configGet(w io.Writer, path string, args Args) error {
	if args.ConfigKey == "" {
		return &UsageError{Reason: "falta la clave", Example: "agente config get audio.volume"}
	}
	cfg, err := effectiveConfig(path, args)
	if err != nil {
		return err
	}
	val, err := cfg.Get(normalizeKey(args.ConfigKey))
	if err != nil {
		return &UsageError{Reason: err.Error(), Example: "agente config keys"}
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{args.ConfigKey: val}).Write(w)
	}
	fmt.Fprintln(w, val)
	return nil
}

func configSet(w io.Writer, path, key, value string) error {
	if key == "" || value == "" {
		return &UsageError{Reason: "uso: config set <clave> <valor>", Example: "agente config set agent.thinking_delay_ms 500"}
	}
	key = normalizeKey(key)

	cfg, err := readConfigFile(path)
	if err != nil {
		return err
	}
	var v any = value
	if cur, err := cfg.Get(key); err == nil {
		if _, isBool := cur.(bool); isBool {
			// Reject "quizás" instead of storing false.
			b, err := ParseBoolString(value)
			if err != nil {
				return &UsageError{Reason: err.Error(), Example: "agente config set audio.enabled no"}
			}
			v = b
		}
	}
	if err := cfg.Set(key, v); err != nil {
		return &UsageError{Reason: err.Error(), Example: "agente config keys"}
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	if err := writeConfigFile(cfg, path); err != nil {
		return err
	}

	fmt.Fprintln(w, styles.RenderSuccess(key+" = "+value))
	return nil
}

func configReset(w io.Writer, path string) error {
	if err := writeConfigFile(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintln(w, styles.RenderSuccess("configuración restablecida en "+path))
	return nil
}

// normalizeKey lower-cases a key and accepts "agent_thinking_delay_ms"
// style spellings of the section separator.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if strings.Contains(key, ".") {
		return key
	}
	for _, k := range config.GetAllKeys() {
		if strings.ReplaceAll(k, ".", "_") == key {
			return k
		}
	}
	return key
}
