// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/Lavavago/Agente/internal/agent"
	"github.com/Lavavago/Agente/internal/order"
)

// =============================================================================
// AGENT MESSAGES
// =============================================================================

// ReplyMsg carries the resolver's answer for request Seq.
type ReplyMsg struct {
	Seq   uint64
	Reply agent.Reply
}

// ReplyFailedMsg reports that request Seq ended without an answer,
// usually because it was cancelled.
type ReplyFailedMsg struct {
	Seq uint64
	Err error
}

// SpeakingDoneMsg fires when the speaking indicator should turn off.
type SpeakingDoneMsg struct{}

// =============================================================================
// ACTION RESULTS
// =============================================================================

// OrderResultMsg is the outcome of submitting the purchase form.
type OrderResultMsg struct {
	Confirmation order.Confirmation
	Err          error
}

// ExportCompleteMsg is the outcome of /export.
type ExportCompleteMsg struct {
	Path string
	Err  error
}

// ClipboardResultMsg is the outcome of /copy.
type ClipboardResultMsg struct {
	Chars int
	Err   error
}
