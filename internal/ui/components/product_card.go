// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/ui/styles"
	"github.com/Lavavago/Agente/internal/util"
)

// =============================================================================
// PRODUCT CARD
// =============================================================================

// MinCardWidth is the narrowest a card is drawn.
const MinCardWidth = 26

// cardGap separates cards in a grid row.
const cardGap = 1

// ProductLabel is the "[id] name" heading used on cards and completions.
func ProductLabel(p catalog.Product) string {
	return fmt.Sprintf("[%d] %s", p.ID, p.Name)
}

// PriceLine renders the final price, plus the struck base price and the
// discount badge when a discount applies.
func PriceLine(theme *styles.Theme, p catalog.Product) string {
	line := theme.CardPrice.Render(catalog.FormatPrice(p.FinalPrice()))
	if p.HasDiscount() {
		line += " " + theme.CardBasePrice.Render(catalog.FormatPrice(p.BasePrice))
		line += " " + theme.CardDiscount.Render(fmt.Sprintf("-%d%%", p.DiscountPercent))
	}
	return line
}

// StatusTag renders DISPONIBLE or AGOTADO.
func StatusTag(theme *styles.Theme, p catalog.Product) string {
	if p.Available {
		return theme.TagAvailable.Render(" " + p.StatusLabel() + " ")
	}
	return theme.TagSoldOut.Render(" " + p.StatusLabel() + " ")
}

// RenderProductCard draws one product in a bordered box width columns wide.
// Compact cards leave out the description.
func RenderProductCard(theme *styles.Theme, p catalog.Product, width int, compact bool) string {
	if width < MinCardWidth {
		width = MinCardWidth
	}
	// Border and padding take four columns.
	inner := width - 4

	lines := []string{
		theme.CardInitials.Render(p.Initials()) + " " +
			theme.CardTitle.Render(util.TruncateWidth(ProductLabel(p), inner-util.StringWidth(p.Initials())-1)),
	}
	if !compact && p.Description != "" {
		for _, l := range util.WrapWidth(p.Description, inner) {
			lines = append(lines, theme.CardDesc.Render(l))
		}
	}
	lines = append(lines, PriceLine(theme, p), StatusTag(theme, p))

	box := theme.Card
	if !p.Available {
		box = theme.CardSoldOut
	}
	return box.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// GridColumns returns how many cards fit across width, between 1 and 3.
func GridColumns(width int) int {
	cols := (width + cardGap) / (MinCardWidth + 8 + cardGap)
	if cols < 1 {
		return 1
	}
	if cols > 3 {
		return 3
	}
	return cols
}

// RenderProductGrid lays products out in rows that fill width. It returns
// "" for no products; callers decide whether to show the empty state.
// Very narrow grids are always compact.
func RenderProductGrid(theme *styles.Theme, products []catalog.Product, width int, compact bool) string {
	if len(products) == 0 {
		return ""
	}
	cols := GridColumns(width)
	cardWidth := (width - cardGap*(cols-1)) / cols
	compact = compact || (cols == 1 && width < 40)

	var rows []string
	for start := 0; start < len(products); start += cols {
		end := start + cols
		if end > len(products) {
			end = len(products)
		}
		cards := make([]string, 0, 2*cols)
		for i, p := range products[start:end] {
			if i > 0 {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, RenderProductCard(theme, p, cardWidth, compact))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderProductLine renders a product as one plain line for the CLI:
// "[1] Sillón Modular Lusso  $960.00 (antes $1200.00, -20%)  DISPONIBLE".
func RenderProductLine(p catalog.Product) string {
	var sb strings.Builder
	sb.WriteString(ProductLabel(p))
	sb.WriteString("  ")
	sb.WriteString(catalog.FormatPrice(p.FinalPrice()))
	if p.HasDiscount() {
		fmt.Fprintf(&sb, " (antes %s, -%d%%)", catalog.FormatPrice(p.BasePrice), p.DiscountPercent)
	}
	sb.WriteString("  ")
	sb.WriteString(p.StatusLabel())
	return sb.String()
}
