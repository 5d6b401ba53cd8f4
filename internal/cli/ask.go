// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
//
// Command: ask
// Short:   Ask the assistant a single question
//
// Examples:
//   agente ask "catálogo"               Product list
//   agente ask --no-delay hola          Answer without the thinking pause
//   agente ask --json "sofá modular"    Machine-readable reply
//
// The reply is rendered as markdown on a terminal and as plain text when
// piped.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Lavavago/Agente/internal/obs"
	"github.com/Lavavago/Agente/internal/session"
)

// askOptions controls how a reply is written.
type askOptions struct {
	JSON     bool
	Markdown bool
}

// HandleAsk handles "agente ask <text>".
func HandleAsk(args Args) error {
	if args.Query == "" {
		return &UsageError{Reason: "falta la pregunta", Example: `agente ask "¿qué tienen en oferta?"`}
	}

	cfg, warn := LoadConfig(args)
	if cfg == nil {
		return warn
	}
	if warn != nil && !args.Quiet && !args.JSON {
		fmt.Fprintf(os.Stderr, "%s %v\n", WarningStyle.Render("[Aviso]"), warn)
	}
	InitLogging(cfg)
	defer obs.Close()

	sess, err := OpenSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Dispose()

	// Ctrl+C cancels the pending reply.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runAsk(ctx, os.Stdout, sess, args.Query, askOptions{
		JSON:     args.JSON,
		Markdown: IsStdoutTTY() && ColorsEnabled(),
	})
}

// runAsk asks query and writes the reply to w.
func runAsk(ctx context.Context, w io.Writer, sess *session.Session, query string, opts askOptions) error {
	msg, err := sess.Ask(ctx, query)
	if err != nil {
		return fmt.Errorf("sin respuesta: %w", err)
	}

	if opts.JSON {
		return NewJSONResponse("ask", AskData{
			Query:     query,
			MessageID: msg.ID,
			Reply:     msg.Text,
			Products:  msg.Products,
		}).Write(w)
	}

	if opts.Markdown {
		fmt.Fprint(w, renderMarkdown(MarkdownMessage(msg)))
		return nil
	}
	fmt.Fprintln(w, FormatMessage(msg))
	return nil
}
