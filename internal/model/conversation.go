// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Lavavago/Agente/internal/catalog"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered message log of one shopping session.
// Not safe for concurrent use; the session serializes access.
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`

	// lastID is the id of the most recent message, including cleared ones.
	lastID int64
	now    func() time.Time
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// SetClock overrides time.Now for message timestamps. Used by tests.
func (c *Conversation) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Conversation) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// append assigns the next id and adds msg to the log.
func (c *Conversation) append(sender Sender, text string, products []catalog.Product) *Message {
	c.lastID++
	msg := &Message{
		ID:        c.lastID,
		Sender:    sender,
		Text:      text,
		Products:  products,
		Timestamp: c.clock(),
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = msg.Timestamp
	c.updateTitle()
	return msg
}

// AddUserMessage appends a user message. User messages never carry products.
func (c *Conversation) AddUserMessage(text string) *Message {
	return c.append(SenderUser, text, nil)
}

// AddAgentMessage appends an agent message. A nil products slice stays nil;
// an empty one stays empty.
func (c *Conversation) AddAgentMessage(text string, products []catalog.Product) *Message {
	if products != nil {
		products = append(make([]catalog.Product, 0, len(products)), products...)
	}
	return c.append(SenderAgent, text, products)
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	return c.lastWhere(func(*Message) bool { return true })
}

// LastAgentMessage returns the most recent agent message, or nil.
func (c *Conversation) LastAgentMessage() *Message {
	return c.lastWhere((*Message).IsAgent)
}

// LastUserMessage returns the most recent user message, or nil.
func (c *Conversation) LastUserMessage() *Message {
	return c.lastWhere((*Message).IsUser)
}

func (c *Conversation) lastWhere(match func(*Message) bool) *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if match(c.Messages[i]) {
			return c.Messages[i]
		}
	}
	return nil
}

// MessageByID finds a visible message. Ids increase along the log, so the
// search is binary.
func (c *Conversation) MessageByID(id int64) *Message {
	i, found := slices.BinarySearchFunc(c.Messages, id, func(m *Message, id int64) int {
		return cmp.Compare(m.ID, id)
	})
	if !found {
		return nil
	}
	return c.Messages[i]
}

func (c *Conversation) MessageCount() int { return len(c.Messages) }

func (c *Conversation) IsEmpty() bool { return len(c.Messages) == 0 }

// LastID returns the id of the most recent message ever appended.
func (c *Conversation) LastID() int64 {
	return c.lastID
}

// Clear empties the visible history. Ids keep counting from where they
// were, so a message id is never reused within a conversation.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
	c.Title = ""
	c.UpdatedAt = c.clock()
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle names the conversation after its first user message, once.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	if i := slices.IndexFunc(c.Messages, (*Message).IsUser); i >= 0 {
		c.Title = c.Messages[i].Preview(50)
	}
}

// GetTitle returns the title, or "Nueva conversación" before the first
// user message.
func (c *Conversation) GetTitle() string {
	return cmp.Or(c.Title, "Nueva conversación")
}

// =============================================================================
// COPYING
// =============================================================================

// Clone creates a copy of the conversation that is safe to hand to another
// goroutine. Messages are immutable, so message pointers are shared.
func (c *Conversation) Clone() *Conversation {
	dup := *c
	dup.Messages = slices.Clone(c.Messages)
	if dup.Messages == nil {
		dup.Messages = []*Message{}
	}
	return &dup
}
