// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lavavago/Agente/internal/catalog"
)

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_IDsStrictlyIncrease(t *testing.T) {
	conv := NewConversation()
	var last int64
	for i := 0; i < 10; i++ {
		var msg *Message
		if i%2 == 0 {
			msg = conv.AddUserMessage("hola")
		} else {
			msg = conv.AddAgentMessage("respuesta", nil)
		}
		if msg.ID <= last {
			t.Fatalf("message %d has id %d, not greater than %d", i, msg.ID, last)
		}
		last = msg.ID
	}
	require.Equal(t, int64(1), conv.Messages[0].ID)
	require.Equal(t, last, conv.LastID())
}

func TestConversation_ClearKeepsCounting(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("uno")
	conv.AddUserMessage("dos")
	conv.Clear()
	require.True(t, conv.IsEmpty())

	msg := conv.AddUserMessage("tres")
	require.Equal(t, int64(3), msg.ID)
}

func TestConversation_ProductsAbsentVersusEmpty(t *testing.T) {
	conv := NewConversation()

	absent := conv.AddAgentMessage("hola", nil)
	require.Nil(t, absent.Products)
	require.False(t, absent.HasProducts())

	empty := conv.AddAgentMessage("mesas", []catalog.Product{})
	require.NotNil(t, empty.Products)
	require.True(t, empty.HasProducts())

	user := conv.AddUserMessage("algo")
	require.Nil(t, user.Products)
}

func TestConversation_AgentProductsAreCopied(t *testing.T) {
	conv := NewConversation()
	products := catalog.Default().ListAll()
	msg := conv.AddAgentMessage("catálogo", products)
	products[0].Name = "mutated"
	require.Equal(t, "Sillón Modular Lusso", msg.Products[0].Name)
}

func TestConversation_Lookups(t *testing.T) {
	conv := NewConversation()
	require.Nil(t, conv.LastMessage())
	require.Nil(t, conv.LastAgentMessage())

	conv.AddAgentMessage("bienvenida", nil)
	u := conv.AddUserMessage("busco mesas")
	a := conv.AddAgentMessage("mesas", []catalog.Product{})

	require.Equal(t, a, conv.LastMessage())
	require.Equal(t, a, conv.LastAgentMessage())
	require.Equal(t, u, conv.LastUserMessage())
	require.Equal(t, u, conv.MessageByID(u.ID))
	require.Nil(t, conv.MessageByID(99))
	require.Equal(t, 3, conv.MessageCount())
	require.Equal(t, "busco mesas", conv.GetTitle())
}

func TestConversation_DefaultTitle(t *testing.T) {
	require.Equal(t, "Nueva conversación", NewConversation().GetTitle())
}

func TestConversation_Clock(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	conv := NewConversation()
	conv.SetClock(func() time.Time { return fixed })
	msg := conv.AddUserMessage("hola")
	require.Equal(t, fixed, msg.Timestamp)
	require.Equal(t, fixed, conv.UpdatedAt)
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("uno")
	clone := conv.Clone()
	conv.AddUserMessage("dos")

	require.Equal(t, 1, clone.MessageCount())
	require.Equal(t, int64(2), clone.AddUserMessage("otro").ID)
}

func TestMessage_JSONKeepsNullVersusEmpty(t *testing.T) {
	conv := NewConversation()
	absent := conv.AddAgentMessage("hola", nil)
	empty := conv.AddAgentMessage("mesas", []catalog.Product{})

	a, err := json.Marshal(absent)
	require.NoError(t, err)
	require.Contains(t, string(a), `"products":null`)

	e, err := json.Marshal(empty)
	require.NoError(t, err)
	require.Contains(t, string(e), `"products":[]`)
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestSender_DisplayName(t *testing.T) {
	require.Equal(t, "Tú", SenderUser.DisplayName())
	require.Equal(t, "Agente", SenderAgent.DisplayName())
	require.Equal(t, "other", Sender("other").DisplayName())
}

func TestMessage_Preview(t *testing.T) {
	msg := &Message{Text: "¿Qué me puedes decir sobre la mesa?"}
	require.Equal(t, msg.Text, msg.Preview(100))
	require.Equal(t, "¿Qué me...", msg.Preview(10))
}

func TestMessage_Presentation(t *testing.T) {
	some := catalog.Default().ListAll()[:2]

	tests := []struct {
		name string
		msg  Message
		want Presentation
	}{
		{
			name: "user message",
			msg:  Message{Sender: SenderUser, Text: "ver catálogo"},
			want: Presentation{ShowText: true},
		},
		{
			name: "agent text only",
			msg:  Message{Sender: SenderAgent, Text: "¡Hola!"},
			want: Presentation{ShowText: true},
		},
		{
			name: "catalog text with products",
			msg:  Message{Sender: SenderAgent, Text: "Estos son los productos disponibles en nuestro catálogo más popular:", Products: some},
			want: Presentation{ShowText: true, ShowGrid: true, CatalogText: true},
		},
		{
			name: "catalog text with empty products suppresses text",
			msg:  Message{Sender: SenderAgent, Text: "Estos son los productos disponibles en nuestro catálogo más popular:", Products: []catalog.Product{}},
			want: Presentation{ShowText: false, ShowEmptyState: true, CatalogText: true},
		},
		{
			name: "catalog text with absent products keeps text",
			msg:  Message{Sender: SenderAgent, Text: "Escribe catálogo para ver más"},
			want: Presentation{ShowText: true, CatalogText: true},
		},
		{
			name: "non-catalog text with empty products keeps text",
			msg:  Message{Sender: SenderAgent, Text: "Encontramos las siguientes mesas para ti:", Products: []catalog.Product{}},
			want: Presentation{ShowText: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.msg.Presentation()
			if got != tc.want {
				t.Errorf("Presentation() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestIsCatalogText(t *testing.T) {
	require.True(t, IsCatalogText("Nuestro CATÁLOGO"))
	require.True(t, IsCatalogText("productos disponibles hoy"))
	require.False(t, IsCatalogText("productos populares"))
}
