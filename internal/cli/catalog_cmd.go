// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// catalog_cmd.go - Catalog listing command.
//
// Command: catalog
// Aliases: catalogo, cat
//
// Flags:
//   --search TEXT    Only products whose name contains TEXT
//   --discount N     Only products with a discount above N%
//   --available      Only products in stock
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/ui/components"
)

// catalogFilter is the parsed set of catalog flags.
type catalogFilter struct {
	Search    string
	Discount  int
	HasMin    bool
	Available bool
}

func parseCatalogFilter(raw []string) (catalogFilter, error) {
	p := NewArgParser(raw)
	f := catalogFilter{
		Search:    strings.TrimSpace(p.Flag("search")),
		Available: p.BoolFlag("available"),
	}
	// "agente catalog mesa de centro" searches like --search.
	if f.Search == "" && p.PositionalCount() > 0 {
		words := make([]string, p.PositionalCount())
		for i := range words {
			words[i] = p.Positional(i)
		}
		f.Search = strings.Join(words, " ")
	}
	n, ok, err := p.FlagInt("discount")
	if err != nil {
		return f, &UsageError{Reason: err.Error(), Example: "agente catalog --discount 10"}
	}
	if ok && (n < 0 || n > 100) {
		return f, &UsageError{Reason: fmt.Sprintf("--discount debe estar entre 0 y 100, no %d", n)}
	}
	f.Discount, f.HasMin = n, ok
	return f, nil
}

// apply narrows the store's products. Every filter combines with AND.
func (f catalogFilter) apply(store *catalog.Store) []catalog.Product {
	return store.Filter(func(p catalog.Product) bool {
		if f.Search != "" && !catalog.NameContains(f.Search)(p) {
			return false
		}
		if f.HasMin && !catalog.DiscountAbove(f.Discount)(p) {
			return false
		}
		if f.Available && !p.Available {
			return false
		}
		return true
	})
}

// HandleCatalog handles "agente catalog".
func HandleCatalog(args Args) error {
	filter, err := parseCatalogFilter(args.Raw)
	if err != nil {
		return err
	}
	cfg, warn := LoadConfig(args)
	if cfg == nil {
		return warn
	}
	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	return writeCatalog(os.Stdout, filter.apply(store), args.JSON, args.Quiet)
}

func writeCatalog(w io.Writer, products []catalog.Product, jsonMode, quiet bool) error {
	if jsonMode {
		return NewJSONResponse("catalog", CatalogData{Count: len(products), Products: products}).Write(w)
	}

	if !quiet {
		fmt.Fprintln(w, TitleStyle.Render("Catálogo"))
		fmt.Fprintln(w, RenderSeparator())
	}
	if len(products) == 0 {
		fmt.Fprintln(w, DimStyle.Render("Ningún producto coincide"))
		return nil
	}
	for _, p := range products {
		fmt.Fprintln(w, components.RenderProductLine(p))
	}
	if !quiet {
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("%d productos", len(products))))
	}
	return nil
}
