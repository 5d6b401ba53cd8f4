// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat screen of the furniture shop assistant.

The screen is a Bubble Tea model over a session.Session. The session owns the
conversation log and the in-flight request; the model only renders it and
turns keys into session calls.

# Key Components

## Model (model.go)

The Model holds the view state around the session:
  - Viewport with the rendered conversation
  - Text input, disabled while the agent is thinking
  - Typing indicator and toast notifications
  - The purchase modal while /buy is open

## Update Loop (update.go)

Keys and results flow through Update:
  - Enter submits text, or runs it as a slash command
  - F1-F4 send the quick actions
  - Esc cancels the pending request
  - Replies are matched against the request sequence; stale ones are dropped

## Requests (request.go)

Blocking work runs in tea.Cmds: resolving a reply, placing an order,
exporting and copying to the clipboard.

## View Rendering (view.go)

Header with the avatar and audio bar, conversation or modal, quick actions,
status line and input.

# Usage

	sess := session.New(session.DefaultConfig(), resolver, nil)
	defer sess.Dispose()

	m := chat.New(chat.Options{Session: sess, Config: cfg})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
*/
package chat
