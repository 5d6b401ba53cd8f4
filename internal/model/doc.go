// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: ordered, append-only message log of one session
//   - Message: one entry with sender, text, timestamp and an optional product list
//   - Sender: who wrote a message (user or agent)
//   - Presentation: which parts of an agent message get rendered
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.AddUserMessage("quiero ver el catálogo")
//	msg := conv.AddAgentMessage(reply.Text, reply.Products)
//	if p := msg.Presentation(); p.ShowGrid {
//	    // draw msg.Products
//	}
//
// Message ids start at 1 and strictly increase for the life of a
// conversation, even across Clear.
package model
