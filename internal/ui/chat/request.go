// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lavavago/Agente/internal/export"
	"github.com/Lavavago/Agente/internal/model"
	"github.com/Lavavago/Agente/internal/order"
	"github.com/Lavavago/Agente/internal/session"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// resolveCmd waits out the thinking delay for p off the event loop and
// reports the answer. Cancelling p's context ends the wait early.
func resolveCmd(sess *session.Session, p *session.Pending) tea.Cmd {
	return func() tea.Msg {
		reply, err := sess.Resolve(p)
		if err != nil {
			return ReplyFailedMsg{Seq: p.Seq, Err: err}
		}
		return ReplyMsg{Seq: p.Seq, Reply: reply}
	}
}

// placeOrderCmd submits the purchase form.
func placeOrderCmd(sess *session.Session, req order.Request) tea.Cmd {
	return func() tea.Msg {
		conf, err := sess.PlaceOrder(context.Background(), req)
		return OrderResultMsg{Confirmation: conf, Err: err}
	}
}

// exportCmd writes conv to dir in the given format.
func exportCmd(conv *model.Conversation, format, dir string) tea.Cmd {
	return func() tea.Msg {
		opts := export.DefaultOptions()
		opts.OutputDir = dir

		exporter, err := export.ForFormat(format, opts)
		if err != nil {
			return ExportCompleteMsg{Err: err}
		}
		path, err := export.ExportToFile(conv, exporter, opts)
		return ExportCompleteMsg{Path: path, Err: err}
	}
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// copyCmd copies text to the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return ClipboardResultMsg{Err: err}
		}
		return ClipboardResultMsg{Chars: utf8.RuneCountInString(text)}
	}
}

// speakingDoneCmd fires once the speaking indicator has run its course.
func speakingDoneCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SpeakingDoneMsg{}
	})
}
