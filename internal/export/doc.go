// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a conversation transcript to disk.
//
// # Supported Formats
//
//   - Markdown: human-readable, product lists rendered as tables
//   - JSON: machine-readable; a message without products has "products": null,
//     one whose product list came back empty has "products": []
//
// # Usage
//
//	exporter, err := export.ForFormat("md", opts)
//	path, err := export.ExportToFile(sess.Conversation(), exporter, opts)
package export
