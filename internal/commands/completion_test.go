// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Lavavago/Agente/internal/catalog"
)

func values(cs []Completion) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Value
	}
	return out
}

func TestCompleter_Commands(t *testing.T) {
	c := NewCompleter(NewRegistry())

	all := c.Complete("/", 1)
	require.Len(t, all, 10)

	require.Equal(t, []string{"/copy"}, values(c.Complete("/cop", 4)))
	require.Equal(t, "/buy", c.Complete("/b", 2)[0].Value)
	require.Empty(t, c.Complete("hola", 4))
	require.Empty(t, c.Complete("/zz", 3))
}

func TestCompleter_Aliases(t *testing.T) {
	c := NewCompleter(NewRegistry())
	got := c.Complete("/sal", 4)
	require.Len(t, got, 1)
	require.Equal(t, "/salir", got[0].Value)
	require.Equal(t, "/salir -> /quit", got[0].Display)
}

func TestCompleter_Enum(t *testing.T) {
	c := NewCompleter(NewRegistry())

	require.Equal(t, []string{"stop"}, values(c.Complete("/audio s", 8)))
	require.Equal(t, []string{"md", "json", "markdown"}, values(c.Complete("/export ", 8)))
	require.Empty(t, c.Complete("/audio on ", 10))
}

func TestCompleter_Products(t *testing.T) {
	c := NewCompleter(NewRegistry())

	got := c.Complete("/buy ", 5)
	require.Len(t, got, 6)
	require.Equal(t, "1", got[0].Value)
	require.Equal(t, "[1] Sillón Modular Lusso", got[0].Display)
	require.Equal(t, "$960.00 DISPONIBLE", got[0].Description)

	got = c.Complete("/info 3", 7)
	require.Len(t, got, 1)
	require.Equal(t, "$126.69 AGOTADO", got[0].Description)
}

func TestCompleter_ProductsFn(t *testing.T) {
	c := NewCompleter(NewRegistry())
	c.ProductsFn = func() []catalog.Product {
		return []catalog.Product{{ID: 12, Name: "Banco", BasePrice: decimal.NewFromInt(40), Available: true}}
	}
	got := c.Complete("/buy 1", 6)
	require.Equal(t, []string{"12"}, values(got))
}

func TestCompleter_CursorInMiddle(t *testing.T) {
	c := NewCompleter(NewRegistry())
	// cursor after "/cop" in "/copy extra"
	require.Equal(t, []string{"/copy"}, values(c.Complete("/copy extra", 4)))
}

func TestCommonPrefix(t *testing.T) {
	require.Equal(t, "", CommonPrefix(nil))
	require.Equal(t, "/c", CommonPrefix([]Completion{{Value: "/catalog"}, {Value: "/clear"}, {Value: "/copy"}}))
	require.Equal(t, "/copy", CommonPrefix([]Completion{{Value: "/copy"}}))
}
