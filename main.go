// agente - A furniture shopping assistant for the terminal.
//
// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lavavago/Agente/internal/cli"
	"github.com/Lavavago/Agente/internal/obs"
	"github.com/Lavavago/Agente/internal/ui/chat"
	"github.com/Lavavago/Agente/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdAsk:
		err = cli.HandleAsk(args)
	case cli.CmdChat:
		err = cli.HandleChat(args)
	case cli.CmdCatalog:
		err = cli.HandleCatalog(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		err = cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		err = cli.HandleUnknown(args)
	}

	if err != nil {
		cli.DisplayError(os.Stderr, cmd.String(), err, args.JSON)
		os.Exit(cli.GetExitCode(err))
	}
}

// runTUI starts the chat interface.
func runTUI(args cli.Args) error {
	if !cli.IsTTY() {
		return &cli.TTYRequiredError{Operation: "abrir la interfaz"}
	}

	cfg, warn := cli.LoadConfig(args)
	if cfg == nil {
		return warn
	}
	cli.InitLogging(cfg)
	defer obs.Close()
	if warn != nil {
		obs.Logger.Warn("config ignored", "error", warn.Error())
	}

	sess, err := cli.OpenSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Dispose()

	mode, err := styles.ParseMode(cfg.UI.Theme)
	if err != nil {
		obs.Logger.Warn("unknown theme", "theme", cfg.UI.Theme)
	}

	m := chat.New(chat.Options{
		Session: sess,
		Config:  cfg,
		Theme:   styles.NewTheme(mode),
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running agente: %w", err)
	}
	return nil
}
