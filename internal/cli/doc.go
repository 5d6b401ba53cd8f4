// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands of
// agente.
//
// With no command agente opens the chat interface; every other command
// runs against the same catalog, resolver and session types without a
// full-screen terminal.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed global flags and command arguments
//   - REPL: Line-mode chat over a session
//   - JSONResponse: Envelope written by --json
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdAsk:
//	    err = cli.HandleAsk(args)
//	case cli.CmdChat:
//	    err = cli.HandleChat(args)
//	}
//	os.Exit(cli.GetExitCode(err))
//
// # Commands Overview
//
//   - ask: One question, one reply
//   - chat: Interactive line-mode chat with /buy
//   - catalog: Product listing with filters
//   - config: Show, get and set configuration values
//   - version, help
//
// ask, catalog, config and version support --json.
package cli
