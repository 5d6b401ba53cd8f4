// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for scripting (--json).
package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/Lavavago/Agente/internal/catalog"
)

// JSONResponse is the envelope every --json command writes, success or
// not. Error is null on success; Data is omitted on failure.
type JSONResponse struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data"`
	Error     *string `json:"error"`
	Timestamp string  `json:"timestamp"` // RFC3339, UTC
	Command   string  `json:"command,omitempty"`
}

func newEnvelope(command string, ok bool) *JSONResponse {
	return &JSONResponse{
		Success:   ok,
		Command:   command,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewJSONResponse wraps the data of a successful command.
func NewJSONResponse(command string, data any) *JSONResponse {
	r := newEnvelope(command, true)
	r.Data = data
	return r
}

// NewJSONErrorResponse reports err for command.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	r := newEnvelope(command, false)
	msg := err.Error()
	r.Error = &msg
	return r
}

// Write encodes the response to w, indented. Product names keep their
// accents and "&" unescaped.
func (r *JSONResponse) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// AskData is the data of "ask --json". Products keeps the null vs []
// distinction of the reply: null means the reply carried no list.
type AskData struct {
	Query     string            `json:"query"`
	MessageID int64             `json:"message_id"`
	Reply     string            `json:"reply"`
	Products  []catalog.Product `json:"products"`
}

// CatalogData is the data of "catalog --json".
type CatalogData struct {
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}
