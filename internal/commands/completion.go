// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/Lavavago/Agente/internal/catalog"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer offers Tab completions for command names, enum arguments and
// product ids.
type Completer struct {
	registry *Registry

	// ProductsFn returns the products offered for id arguments.
	// nil uses the built-in catalog.
	ProductsFn func() []catalog.Product
}

// NewCompleter creates a completer over registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns the completions for input up to cursorPos (in runes).
// Plain text has none.
func (c *Completer) Complete(input string, cursorPos int) []Completion {
	if runes := []rune(input); cursorPos >= 0 && cursorPos < len(runes) {
		input = string(runes[:cursorPos])
	}
	input = strings.TrimLeft(input, " ")
	if !IsCommand(input) {
		return nil
	}

	words := ParseArgs(input)
	trailingSpace := strings.HasSuffix(input, " ")
	if len(words) == 0 {
		return c.commandNames("")
	}
	if len(words) == 1 && !trailingSpace {
		return c.commandNames(words[0])
	}

	cmd := c.registry.Get(strings.ToLower(words[0]))
	if cmd == nil {
		return nil
	}

	// The word under the cursor is the partial argument; after a space a
	// new, empty argument starts.
	args := words[1:]
	partial := ""
	if !trailingSpace {
		partial = args[len(args)-1]
		args = args[:len(args)-1]
	}
	return c.argument(cmd, len(args), partial)
}

func (c *Completer) commandNames(partial string) []Completion {
	partial = strings.ToLower(partial)
	var out []Completion

	for _, cmd := range c.registry.All() {
		if cmd.Hidden {
			continue
		}
		if strings.HasPrefix(cmd.Name, partial) {
			out = append(out, Completion{
				Value:       cmd.Name,
				Display:     cmd.Name,
				Description: cmd.Description,
				Score:       rank(cmd.Name, partial),
			})
		}
		// Aliases only once something beyond the slash is typed.
		if len(partial) < 2 {
			continue
		}
		for _, alias := range cmd.Aliases {
			if strings.HasPrefix(alias, partial) {
				out = append(out, Completion{
					Value:       alias,
					Display:     alias + " -> " + cmd.Name,
					Description: cmd.Description,
					Score:       rank(alias, partial) - 10,
				})
			}
		}
	}
	return sorted(out)
}

func (c *Completer) argument(cmd *Command, index int, partial string) []Completion {
	if index >= len(cmd.Args) {
		return nil
	}
	def := cmd.Args[index]
	switch def.Type {
	case ArgTypeEnum:
		return enumValues(def.Values, partial)
	case ArgTypeProduct:
		return c.productIDs(partial)
	}
	return nil
}

// productIDs offers every product whose id starts with partial, with its
// name and price as the description.
func (c *Completer) productIDs(partial string) []Completion {
	var products []catalog.Product
	if c.ProductsFn != nil {
		products = c.ProductsFn()
	} else {
		products = catalog.Default().ListAll()
	}

	var out []Completion
	for _, p := range products {
		id := strconv.Itoa(p.ID)
		if strings.HasPrefix(id, partial) {
			out = append(out, Completion{
				Value:       id,
				Display:     "[" + id + "] " + p.Name,
				Description: catalog.FormatPrice(p.FinalPrice()) + " " + p.StatusLabel(),
				Score:       rank(id, partial),
			})
		}
	}
	return sorted(out)
}

func enumValues(values []string, partial string) []Completion {
	partial = strings.ToLower(partial)
	var out []Completion
	for _, v := range values {
		if strings.HasPrefix(strings.ToLower(v), partial) {
			out = append(out, Completion{Value: v, Display: v, Score: rank(v, partial)})
		}
	}
	return sorted(out)
}

// =============================================================================
// RANKING
// =============================================================================

// rank scores a prefix match: an exact match wins, otherwise shorter values
// rank higher.
func rank(value, partial string) int {
	value = strings.ToLower(value)
	if value == strings.ToLower(partial) {
		return 200
	}
	n := len(value)
	return 170 - n - n/2
}

// sorted orders completions by score, best first, then by value.
func sorted(cs []Completion) []Completion {
	slices.SortStableFunc(cs, func(a, b Completion) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return strings.Compare(a.Value, b.Value)
	})
	return cs
}

// CommonPrefix returns the longest prefix shared by all completion values.
func CommonPrefix(cs []Completion) string {
	if len(cs) == 0 {
		return ""
	}
	prefix := cs[0].Value
	for _, c := range cs[1:] {
		for !strings.HasPrefix(c.Value, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
