// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat.
//
// Commands are parsed from the input line, validated against their argument
// definitions and turned into a tea.Cmd whose message the chat model applies.
// Handlers never touch the conversation themselves.
//
// # Key Types
//
//   - Registry: command registry with all built-in commands
//   - Parser / ParseResult: input line to command name and arguments
//   - Completer: tab completion for command names, enums and product ids
//   - Context: session and config handed to handlers
//
// # Built-in Commands
//
//   - /help, /quit
//   - /clear, /export, /copy
//   - /catalog, /buy, /info
//   - /audio, /volume
//
// # Usage
//
//	reg := commands.NewRegistry()
//	result := commands.NewParser(reg).Parse(input)
//	if result.IsCommand {
//	    cmd := reg.Dispatch(ctx, result)
//	}
package commands
