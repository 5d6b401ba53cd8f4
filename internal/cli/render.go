// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// render.go - Text and markdown forms of agent replies for the CLI.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/model"
	"github.com/Lavavago/Agente/internal/ui/components"
)

// =============================================================================
// PLAIN TEXT
// =============================================================================

// FormatMessage renders a message as plain lines, following its
// presentation rules: text, then one line per product, or the empty-state
// line for an empty catalog reply.
func FormatMessage(msg *model.Message) string {
	p := msg.Presentation()
	var lines []string

	if p.ShowText {
		lines = append(lines, msg.Text)
	}
	if p.ShowGrid {
		for _, product := range msg.Products {
			lines = append(lines, "  "+components.RenderProductLine(product))
		}
	}
	if p.ShowEmptyState {
		lines = append(lines, model.EmptyStateText)
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// MARKDOWN
// =============================================================================

// MarkdownMessage is FormatMessage as markdown, products as a bullet list.
func MarkdownMessage(msg *model.Message) string {
	p := msg.Presentation()
	var sb strings.Builder

	if p.ShowText {
		sb.WriteString(msg.Text)
		sb.WriteString("\n\n")
	}
	if p.ShowGrid {
		for _, product := range msg.Products {
			sb.WriteString(markdownProduct(product))
			sb.WriteString("\n")
		}
	}
	if p.ShowEmptyState {
		sb.WriteString("_")
		sb.WriteString(model.EmptyStateText)
		sb.WriteString("_\n")
	}
	return sb.String()
}

func markdownProduct(p catalog.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- **%s** %s", components.ProductLabel(p), catalog.FormatPrice(p.FinalPrice()))
	if p.HasDiscount() {
		fmt.Fprintf(&sb, " ~~%s~~ -%d%%", catalog.FormatPrice(p.BasePrice), p.DiscountPercent)
	}
	fmt.Fprintf(&sb, " `%s`", p.StatusLabel())
	return sb.String()
}

// markdownRenderer is nil when glamour could not be set up; output then
// stays plain.
var markdownRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()-4),
	)
	if err == nil {
		markdownRenderer = r
	}
}

// renderMarkdown renders markdown for the terminal, or returns it unchanged
// when rendering fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
