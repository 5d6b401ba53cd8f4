// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of one shopping conversation.
//
// A Session owns the message log and is the only thing that appends to it.
// The resolver and order capture are handed to it at construction; the TUI
// and the REPL drive it through the same small surface.
//
// # Key Types
//
//   - Session: conversation owner with last-request-wins dispatch
//   - Pending: an in-flight request with its sequence number and context
//   - Audio: snapshot of the audio controls
//   - Mood: avatar expression (neutral or thinking)
//
// # Usage
//
// Event-loop style, as the TUI does it:
//
//	p, err := sess.Submit("busco mesas")
//	// later, off the loop:
//	reply, err := sess.Resolve(p)
//	// back on the loop:
//	if msg, ok := sess.Complete(p.Seq, reply); ok {
//	    // render msg
//	}
//
// Blocking style, as the REPL does it:
//
//	msg, err := sess.Ask(ctx, "busco mesas")
//
// A Complete for anything but the newest request is dropped, and so is
// every Complete after Dispose.
package session
