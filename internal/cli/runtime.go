// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// runtime.go - Config, logging and session setup shared by the TUI and
// the CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/Lavavago/Agente/internal/agent"
	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/config"
	"github.com/Lavavago/Agente/internal/obs"
	"github.com/Lavavago/Agente/internal/session"
)

// LoadConfig loads --config or the default locations, then applies the
// global flags on top. A broken default config file is a warning: the
// defaults are used and the error returned alongside.
func LoadConfig(args Args) (*config.Config, error) {
	var cfg *config.Config
	var warn error

	if args.ConfigPath != "" {
		loaded, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		cfg = loaded
	} else {
		loaded, err := config.Load()
		if loaded == nil {
			return nil, &ConfigError{Err: err}
		}
		cfg, warn = loaded, err
	}

	applyFlags(cfg, args)
	return cfg, warn
}

func applyFlags(cfg *config.Config, args Args) {
	if args.CatalogPath != "" {
		cfg.Catalog.Path = args.CatalogPath
	}
	if args.NoDelay {
		cfg.Agent.ThinkingDelayMs = 0
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}
}

// InitLogging opens the log file named by cfg. When it cannot be opened
// logging is discarded rather than written over the TUI.
func InitLogging(cfg *config.Config) {
	if err := obs.InitLogger(cfg.LogPath(), cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", WarningStyle.Render("[Aviso]"), err)
		obs.Discard()
	}
}

// SessionConfig maps the [agent] and [audio] sections onto a session config.
func SessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		Welcome: cfg.Agent.Welcome,
		Audio: session.AudioConfig{
			Enabled:  cfg.Audio.Enabled,
			Volume:   cfg.Audio.Volume,
			SpeakFor: cfg.SpeakFor(),
		},
	}
}

// OpenSession loads the catalog and builds a session answering with the
// configured thinking delay.
func OpenSession(cfg *config.Config) (*session.Session, error) {
	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	resolver := agent.NewResolver(store, agent.WithDelay(cfg.ThinkingDelay()))
	obs.Logger.Info("catalog loaded", "path", cfg.Catalog.Path, "products", store.Len(), "delay_ms", cfg.Agent.ThinkingDelayMs)
	return session.New(SessionConfig(cfg), resolver, nil), nil
}
