// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes a conversation as a Markdown document. Agent
// messages read the way the chat shows them: suppressed text stays
// suppressed and an empty catalog reply gets the empty-state line.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter uses DefaultOptions when opts is nil.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

func (e *MarkdownExporter) FileExtension() string { return ".md" }

func (e *MarkdownExporter) MimeType() string { return "text/markdown" }

// Export renders conv. With IncludeMetadata the document opens with YAML
// frontmatter and a session summary.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if err := exportable(conv); err != nil {
		return nil, err
	}
	if conv.CreatedAt.IsZero() {
		return nil, fmt.Errorf("conversation %s has no creation time", conv.ID)
	}

	var b strings.Builder
	title := conv.GetTitle()
	exported := e.options.now()

	if e.options.IncludeMetadata {
		fmt.Fprintf(&b, "---\ntitle: %s\nid: %s\ndate: %s\nmessages: %d\nexported: %s\ngenerator: agente\n---\n\n",
			escapeYAML(title), conv.ID, conv.CreatedAt.Format(time.RFC3339),
			conv.MessageCount(), exported.Format(time.RFC3339))
	}

	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))

	if e.options.IncludeMetadata {
		fmt.Fprintf(&b, "## Información de la sesión\n\n- **Creada**: %s\n- **Actualizada**: %s\n- **Mensajes**: %d\n\n---\n\n",
			formatTimestamp(conv.CreatedAt), formatTimestamp(conv.UpdatedAt), conv.MessageCount())
	}

	b.WriteString("## Conversación\n\n")
	for i, msg := range conv.Messages {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		b.WriteString("### " + msg.Sender.DisplayName())
		if e.options.IncludeTimestamps {
			b.WriteString(" <sub>" + formatShortTimestamp(msg.Timestamp) + "</sub>")
		}
		b.WriteString("\n\n")
		writeBody(&b, msg)
	}

	fmt.Fprintf(&b, "\n---\n\n*Exportado desde agente el %s*\n", exported.Format("2006-01-02 15:04"))
	return []byte(b.String()), nil
}

// writeBody follows the message's presentation: text, product table,
// empty-state line, each only when the chat would show it.
func writeBody(b *strings.Builder, msg *model.Message) {
	p := msg.Presentation()
	if p.ShowText {
		b.WriteString(strings.TrimSpace(msg.Text) + "\n\n")
	}
	if p.ShowGrid {
		writeProductTable(b, msg.Products)
		b.WriteString("\n")
	}
	if p.ShowEmptyState {
		b.WriteString("_" + model.EmptyStateText + "_\n\n")
	}
}

func writeProductTable(b *strings.Builder, products []catalog.Product) {
	b.WriteString("| # | Producto | Precio | Antes | Descuento | Estado |\n")
	b.WriteString("|---|----------|-------:|------:|----------:|--------|\n")
	for _, p := range products {
		var before, discount string
		if p.HasDiscount() {
			before = "~~" + catalog.FormatPrice(p.BasePrice) + "~~"
			discount = fmt.Sprintf("-%d%%", p.DiscountPercent)
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s |\n", p.ID, escapeTableCell(p.Name),
			catalog.FormatPrice(p.FinalPrice()), before, discount, p.StatusLabel())
	}
}

// =============================================================================
// ESCAPING
// =============================================================================

var (
	markdownEscaper = strings.NewReplacer("#", `\#`, "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`)
	cellEscaper     = strings.NewReplacer("|", `\|`)
	yamlEscaper     = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
)

// yamlSpecial are the characters that force a frontmatter value into quotes.
const yamlSpecial = ":#|>@`\"'[]{}!%&*¿?\n\r\\"

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }

func escapeTableCell(s string) string { return cellEscaper.Replace(s) }

// escapeYAML double-quotes s when plain YAML would misread it.
func escapeYAML(s string) string {
	if !strings.ContainsAny(s, yamlSpecial) && strings.TrimSpace(s) == s {
		return s
	}
	return `"` + yamlEscaper.Replace(s) + `"`
}
