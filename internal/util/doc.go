// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across agente.
//
// # Key Functions
//
// String Utilities (display-width aware, via go-runewidth):
//   - TruncateRunes, TruncateWidth: safe truncation with ellipsis
//   - PadRight, Center: fixed-width cells for product cards
//   - WrapWidth: word wrapping for card descriptions
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	name := util.PadRight(product.Name, 24)
//	err := util.AtomicWriteFile(path, data, 0644)
package util
