// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lavavago/Agente/internal/model"
	"github.com/Lavavago/Agente/internal/obs"
	"github.com/Lavavago/Agente/internal/util"
)

// ErrEmptyConversation is returned when there is nothing to export.
var ErrEmptyConversation = errors.New("conversation has no messages")

func exportable(conv *model.Conversation) error {
	if conv == nil {
		return errors.New("no conversation to export")
	}
	if conv.IsEmpty() {
		return ErrEmptyConversation
	}
	return nil
}

// =============================================================================
// EXPORTERS
// =============================================================================

// Exporter renders a conversation in one file format.
type Exporter interface {
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension includes the dot (".md").
	FileExtension() string

	MimeType() string
}

// Options controls what goes into an export and where it is written.
type Options struct {
	// OutputDir is where ExportToFile writes; empty means the working
	// directory.
	OutputDir string

	// IncludeMetadata adds the frontmatter and session summary (Markdown).
	IncludeMetadata bool

	// IncludeTimestamps adds the time to each message heading (Markdown).
	IncludeTimestamps bool

	// Now is the clock used for export timestamps; nil means time.Now.
	Now func() time.Time
}

// DefaultOptions writes everything to the working directory.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
	}
}

func (o *Options) now() time.Time {
	if o == nil || o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// ForFormat returns the exporter for "md", "markdown" or "json". Empty
// means Markdown.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	}
	return nil, fmt.Errorf("unknown export format %q (use md or json)", format)
}

// ExportToFile writes conv through exporter into opts.OutputDir and returns
// the path. File names are "conversacion_<title>_<timestamp><ext>".
func ExportToFile(conv *model.Conversation, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	dir := cmp.Or(opts.OutputDir, ".")
	name := "conversacion_" + sanitizeFilename(conv.GetTitle()) + "_" +
		opts.now().Format("20060102_150405") + exporter.FileExtension()
	path := filepath.Join(dir, name)

	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	obs.Logger.Info("conversation exported", "path", path, "format", exporter.MimeType(), "messages", conv.MessageCount())
	return path, nil
}

// =============================================================================
// HELPERS
// =============================================================================

const maxTitleRunes = 50

// sanitizeFilename makes a conversation title safe as part of a file name:
// path and shell metacharacters become "-", whitespace becomes "_".
func sanitizeFilename(s string) string {
	if runes := []rune(s); len(runes) > maxTitleRunes {
		s = string(runes[:maxTitleRunes])
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return '_'
		case strings.ContainsRune(`/\:*?¿"<>|`, r), r < 32, r == 127:
			return '-'
		}
		return r
	}, s)
	if s == "" {
		return "conversacion"
	}
	return s
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
