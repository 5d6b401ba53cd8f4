// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/model"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testOptions(dir string) *Options {
	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func testConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.SetClock(func() time.Time { return fixedNow })
	conv.AddAgentMessage("¡Hola! Soy tu asistente.", nil)
	conv.AddUserMessage("quiero ver el catálogo")
	conv.AddAgentMessage("Aquí está nuestro catálogo completo:", catalog.Seed()[:2])
	conv.AddUserMessage("mesas")
	conv.AddAgentMessage("Catálogo de mesas:", []catalog.Product{})
	return conv
}

// =============================================================================
// FORMAT SELECTION
// =============================================================================

func TestForFormat(t *testing.T) {
	testCases := []struct {
		format string
		ext    string
	}{
		{"", ".md"},
		{"md", ".md"},
		{"Markdown", ".md"},
		{" json ", ".json"},
	}
	for _, tc := range testCases {
		exp, err := ForFormat(tc.format, nil)
		if err != nil {
			t.Fatalf("ForFormat(%q) error: %v", tc.format, err)
		}
		if exp.FileExtension() != tc.ext {
			t.Errorf("ForFormat(%q) ext = %q, want %q", tc.format, exp.FileExtension(), tc.ext)
		}
	}

	if _, err := ForFormat("html", nil); err == nil {
		t.Error("ForFormat(html) should fail")
	}
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdownExport(t *testing.T) {
	out, err := NewMarkdownExporter(testOptions("")).Export(testConversation())
	require.NoError(t, err)
	md := string(out)

	require.True(t, strings.HasPrefix(md, "---\n"))
	require.Contains(t, md, "title: quiero ver el catálogo\n")
	require.Contains(t, md, "messages: 5\n")
	require.Contains(t, md, "# quiero ver el catálogo")
	require.Contains(t, md, "### Tú <sub>09:30:00</sub>")
	require.Contains(t, md, "### Agente <sub>09:30:00</sub>")

	// Populated grid: text plus a product table.
	require.Contains(t, md, "Aquí está nuestro catálogo completo:")
	require.Contains(t, md, "| 1 | Sillón Modular Lusso | $960.00 | ~~$1200.00~~ | -20% | DISPONIBLE |")
	require.Contains(t, md, "| 2 | Mesa de Centro Nórdica | $332.98 | ~~$350.50~~ | -5% | DISPONIBLE |")

	// Empty catalog reply: text suppressed, empty-state line shown.
	require.NotContains(t, md, "Catálogo de mesas:")
	require.Contains(t, md, "_"+model.EmptyStateText+"_")

	require.Contains(t, md, "*Exportado desde agente el 2025-03-14 09:30*")
}

func TestMarkdownExport_NoMetadata(t *testing.T) {
	opts := testOptions("")
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false

	out, err := NewMarkdownExporter(opts).Export(testConversation())
	require.NoError(t, err)
	md := string(out)

	require.False(t, strings.HasPrefix(md, "---\n"))
	require.NotContains(t, md, "<sub>")
	require.Contains(t, md, "### Tú\n")
}

func TestMarkdownExport_Errors(t *testing.T) {
	exp := NewMarkdownExporter(nil)

	_, err := exp.Export(nil)
	require.Error(t, err)

	_, err = exp.Export(model.NewConversation())
	require.ErrorIs(t, err, ErrEmptyConversation)
}

func TestEscapeHelpers(t *testing.T) {
	require.Equal(t, `\#1 \*oferta\*`, escapeMarkdown("#1 *oferta*"))
	require.Equal(t, "mesas", escapeYAML("mesas"))
	require.Equal(t, `"¿precio: 10?"`, escapeYAML("¿precio: 10?"))
	require.Equal(t, `"di \"hola\""`, escapeYAML(`di "hola"`))
	require.Equal(t, `a \| b`, escapeTableCell("a | b"))
}

// =============================================================================
// JSON TESTS
// =============================================================================

func TestJSONExport_AbsentVersusEmptyProducts(t *testing.T) {
	out, err := NewJSONExporter(testOptions("")).Export(testConversation())
	require.NoError(t, err)

	var doc struct {
		Generator string            `json:"generator"`
		Messages  []json.RawMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Equal(t, "agente", doc.Generator)
	require.Len(t, doc.Messages, 5)

	var products []map[string]json.RawMessage
	for _, raw := range doc.Messages {
		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &m))
		products = append(products, m)
	}

	require.Equal(t, "null", string(products[0]["products"]))
	require.Equal(t, "null", string(products[1]["products"]))
	require.Equal(t, "[]", string(products[4]["products"]))

	var grid []catalog.Product
	require.NoError(t, json.Unmarshal(products[2]["products"], &grid))
	require.Len(t, grid, 2)
	require.Equal(t, "Sillón Modular Lusso", grid[0].Name)
	require.True(t, grid[0].BasePrice.Equal(catalog.Seed()[0].BasePrice))
}

func TestJSONExport_Errors(t *testing.T) {
	exp := NewJSONExporter(nil)
	_, err := exp.Export(nil)
	require.Error(t, err)
	_, err = exp.Export(model.NewConversation())
	require.ErrorIs(t, err, ErrEmptyConversation)
	require.Equal(t, "application/json", exp.MimeType())
}

// =============================================================================
// FILE EXPORT TESTS
// =============================================================================

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)

	path, err := ExportToFile(testConversation(), NewJSONExporter(opts), opts)
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(path))
	require.Equal(t, "conversacion_quiero_ver_el_catálogo_20250314_093000.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, json.Valid(data))
}

func TestExportToFile_EmptyConversation(t *testing.T) {
	opts := testOptions(t.TempDir())
	_, err := ExportToFile(model.NewConversation(), NewMarkdownExporter(opts), opts)
	require.ErrorIs(t, err, ErrEmptyConversation)
}

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"hola mundo", "hola_mundo"},
		{"¿precio?", "-precio-"},
		{"a/b\\c:d", "a-b-c-d"},
		{"", "conversacion"},
		{strings.Repeat("x", 60), strings.Repeat("x", 50)},
	}
	for _, tc := range testCases {
		if got := sanitizeFilename(tc.input); got != tc.expected {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
