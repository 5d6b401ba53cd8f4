// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/Lavavago/Agente/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter dumps the conversation as one Document. Options only
// supply the clock: every message is always included.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter uses DefaultOptions when opts is nil.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Document is the layout of a JSON export. Messages keep their own JSON
// form, so "products": null and "products": [] survive the export.
type Document struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	ExportedAt time.Time        `json:"exported_at"`
	Generator  string           `json:"generator"`
	Messages   []*model.Message `json:"messages"`
}

func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	if err := exportable(conv); err != nil {
		return nil, err
	}

	doc := Document{
		ID:         conv.ID,
		Title:      conv.GetTitle(),
		CreatedAt:  conv.CreatedAt,
		UpdatedAt:  conv.UpdatedAt,
		ExportedAt: e.options.now(),
		Generator:  "agente",
		Messages:   conv.Messages,
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (e *JSONExporter) FileExtension() string { return ".json" }

func (e *JSONExporter) MimeType() string { return "application/json" }
