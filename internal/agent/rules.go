// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"strings"

	"github.com/Lavavago/Agente/internal/catalog"
)

// Reply texts.
const (
	GreetingText = "¡Hola! ¿Cómo estás? Dime qué producto te interesa o si buscas algo en particular."
	ModularText  = "¡Excelente elección! Aquí tienes el Sillón Modular Lusso:"
	CatalogText  = "Estos son los productos disponibles en nuestro catálogo más popular:"
	PopularText  = "Estos son nuestros productos más populares en este momento:"
	TablesText   = "Encontramos las siguientes mesas para ti:"
	FallbackText = "Gracias por tu consulta. Dame un momento para buscar esa información."
)

// =============================================================================
// RULES
// =============================================================================

// Rule is one keyword rule: when Match accepts the normalized input, Handle
// builds the reply.
type Rule struct {
	Name   string
	Match  func(normalized string) bool
	Handle func(store *catalog.Store) Reply
}

// Matches reports whether the rule accepts raw user input.
func (r Rule) Matches(input string) bool {
	return r.Match(Normalize(input))
}

// containsAny returns a matcher accepting text that contains any keyword.
func containsAny(keywords ...string) func(string) bool {
	return func(text string) bool {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

// textOnly replies without a products field.
func textOnly(text string) func(*catalog.Store) Reply {
	return func(*catalog.Store) Reply {
		return Reply{Text: text}
	}
}

// withProducts replies with the products selected by pick. The products field
// is always present, even when pick selects nothing.
func withProducts(text string, pick func(*catalog.Store) []catalog.Product) func(*catalog.Store) Reply {
	return func(store *catalog.Store) Reply {
		products := pick(store)
		if products == nil {
			products = []catalog.Product{}
		}
		return Reply{Text: text, Products: products}
	}
}

// Rules returns the keyword rules in evaluation order.
// Order matters: "hola, quiero ver productos modulares" is a greeting.
func Rules() []Rule {
	return []Rule{
		{
			Name:   "greeting",
			Match:  containsAny("hola"),
			Handle: textOnly(GreetingText),
		},
		{
			Name:  "modular",
			Match: containsAny("modular"),
			Handle: withProducts(ModularText, func(s *catalog.Store) []catalog.Product {
				return s.Filter(catalog.NameContains("modular"))
			}),
		},
		{
			Name:  "catalog",
			Match: containsAny("catálogo", "productos", "ver catálogo"),
			Handle: withProducts(CatalogText, func(s *catalog.Store) []catalog.Product {
				return s.ListAll()
			}),
		},
		{
			Name:  "popular",
			Match: containsAny("populares"),
			Handle: withProducts(PopularText, func(s *catalog.Store) []catalog.Product {
				return s.Filter(catalog.DiscountAbove(10))
			}),
		},
		{
			Name:  "tables",
			Match: containsAny("mesas"),
			Handle: withProducts(TablesText, func(s *catalog.Store) []catalog.Product {
				return s.Filter(catalog.NameContains("mesa"))
			}),
		},
	}
}

// fallbackReply is returned when no rule matches.
func fallbackReply() Reply {
	return Reply{Text: FallbackText}
}
