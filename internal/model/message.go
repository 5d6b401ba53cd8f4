// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/Lavavago/Agente/internal/catalog"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns the label shown next to a message.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "Tú"
	case SenderAgent:
		return "Agente"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// EmptyStateText is shown in place of a product grid that came back empty.
const EmptyStateText = "No se encontraron productos válidos para mostrar."

// Message is one entry in the conversation log. Messages are appended and
// never modified afterwards.
type Message struct {
	ID        int64     `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// Products is nil when the message carries no product list and non-nil
	// (possibly empty) when it does. Encodes as null vs [] respectively.
	Products []catalog.Product `json:"products"`
}

// IsUser reports whether the shopper wrote the message.
func (m *Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsAgent reports whether the assistant wrote the message.
func (m *Message) IsAgent() bool {
	return m.Sender == SenderAgent
}

// HasProducts reports whether the message carries a product list, even an
// empty one.
func (m *Message) HasProducts() bool {
	return m.Products != nil
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// PRESENTATION
// =============================================================================

// Presentation says which parts of a message the renderer draws.
type Presentation struct {
	// ShowText is false only for catalog replies whose product list came
	// back empty; the empty-state line replaces the text then.
	ShowText bool

	// ShowGrid is true when there are products to draw.
	ShowGrid bool

	// ShowEmptyState is true for catalog replies with an empty product list.
	ShowEmptyState bool

	// CatalogText is true when the text talks about the catalog.
	CatalogText bool
}

// IsCatalogText reports whether text reads as a catalog listing.
func IsCatalogText(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "catálogo") || strings.Contains(lower, "productos disponibles")
}

// Presentation works out how the message should be rendered.
//
// A present-but-empty product list and an absent one render differently:
// only the former can hide the text and show the empty-state line.
func (m *Message) Presentation() Presentation {
	if m.IsUser() {
		return Presentation{ShowText: true}
	}

	catalogText := IsCatalogText(m.Text)
	emptyList := m.Products != nil && len(m.Products) == 0

	return Presentation{
		ShowText:       !(catalogText && emptyList),
		ShowGrid:       len(m.Products) > 0,
		ShowEmptyState: catalogText && emptyList,
		CatalogText:    catalogText,
	}
}
