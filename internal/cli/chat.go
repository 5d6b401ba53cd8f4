// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat command.
//
// Command: chat
// Aliases: repl
//
// A plain read-eval-print loop over the same session the TUI uses, for
// terminals where the full-screen interface is unavailable.
//
// Interactive Commands:
//   /help, /h           Show available commands
//   /clear, /c          Clear the conversation
//   /catalog            Show the catalog
//   /info <id>          Show one product
//   /buy <id>           Buy a product (asks for each field)
//   /quit, /q, exit     Leave the chat
//   Ctrl+C              Cancel the pending reply
//   Ctrl+D              Leave the chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/commands"
	"github.com/Lavavago/Agente/internal/config"
	"github.com/Lavavago/Agente/internal/obs"
	"github.com/Lavavago/Agente/internal/order"
	"github.com/Lavavago/Agente/internal/session"
	"github.com/Lavavago/Agente/internal/ui/components"
	"github.com/Lavavago/Agente/internal/ui/styles"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides line editing and persistent input history.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI opens the terminal in line-editing mode and loads history
// from the config directory.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// ReadInput prompts for one line. Non-blank lines are added to history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close writes the history (owner read/write only) and restores the
// terminal.
func (c *ChatCLI) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// PromptFunc reads one line after showing a prompt.
type PromptFunc func(prompt string) (string, error)

// REPL runs chat lines against a session.
type REPL struct {
	sess   *session.Session
	out    io.Writer
	prompt PromptFunc
}

// NewREPL creates a REPL writing to out and reading with prompt.
func NewREPL(sess *session.Session, out io.Writer, prompt PromptFunc) *REPL {
	return &REPL{sess: sess, out: out, prompt: prompt}
}

var errQuit = errors.New("quit")

// Run reads lines until /quit or end of input. Each question gets its own
// context so Ctrl+C only cancels the pending reply.
func (r *REPL) Run(ctx context.Context) error {
	r.printWelcome()
	for {
		line, err := r.prompt(PromptStyle.Render("tú> "))
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(r.out)
			return nil
		}

		askCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		err = r.handleLine(askCtx, line)
		stop()
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (r *REPL) printWelcome() {
	fmt.Fprintln(r.out, TitleStyle.Render("agente - chat en modo línea"))
	fmt.Fprintln(r.out, DimStyle.Render("Escribe /help para ver los comandos, /quit para salir."))
	fmt.Fprintln(r.out, RenderSeparator())
	if msg := r.sess.LastAgentMessage(); msg != nil {
		r.printAgent(FormatMessage(msg))
	}
}

func (r *REPL) printAgent(text string) {
	fmt.Fprintf(r.out, "%s %s\n", AgentStyle.Render("agente>"), text)
}

// handleLine runs one input line. It returns errQuit to leave the loop;
// other failures are printed and the loop continues.
func (r *REPL) handleLine(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	lower := strings.ToLower(line)
	if lower == "exit" || lower == "quit" || lower == "salir" {
		return errQuit
	}
	if !strings.HasPrefix(line, "/") {
		return r.ask(ctx, line)
	}

	fields := strings.Fields(line)
	name, rest := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/help", "/h", "/ayuda":
		r.printHelp()
	case "/quit", "/q", "/exit", "/salir":
		return errQuit
	case "/clear", "/c":
		r.sess.Clear()
		fmt.Fprintln(r.out, SuccessStyle.Render("Conversación borrada"))
	case "/catalog", "/catalogo", "/catálogo":
		return r.ask(ctx, commands.CatalogQuery)
	case "/info":
		if p, ok := r.lookupProduct(rest); ok {
			r.printProduct(p)
		}
	case "/buy", "/comprar":
		if p, ok := r.lookupProduct(rest); ok {
			r.buy(ctx, p)
		}
	default:
		fmt.Fprintf(r.out, "%s comando desconocido %s; usa /help\n", ErrorStyle.Render("[Error]"), name)
	}
	return nil
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, TitleStyle.Render("Comandos"))
	rows := [][2]string{
		{"/help", "Mostrar esta ayuda"},
		{"/clear", "Borrar la conversación"},
		{"/catalog", "Ver el catálogo"},
		{"/info <id>", "Ver un producto"},
		{"/buy <id>", "Comprar un producto"},
		{"/quit", "Salir"},
	}
	for _, row := range rows {
		fmt.Fprintf(r.out, "  %s %s\n", RenderLabel(row[0]), row[1])
	}
}

func (r *REPL) ask(ctx context.Context, text string) error {
	fmt.Fprintln(r.out, DimStyle.Render("El agente está pensando..."))
	msg, err := r.sess.Ask(ctx, text)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(r.out, WarningStyle.Render("Respuesta cancelada"))
		return nil
	case errors.Is(err, session.ErrDisposed):
		return err
	case err != nil:
		fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		return nil
	}
	r.printAgent(FormatMessage(msg))
	return nil
}

// lookupProduct resolves the id argument of /info and /buy, printing the
// problem when there is none.
func (r *REPL) lookupProduct(rest []string) (catalog.Product, bool) {
	if len(rest) == 0 {
		fmt.Fprintf(r.out, "%s falta el id del producto\n", ErrorStyle.Render("[Error]"))
		return catalog.Product{}, false
	}
	id, err := strconv.Atoi(rest[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s id inválido: %s\n", ErrorStyle.Render("[Error]"), rest[0])
		return catalog.Product{}, false
	}
	p, ok := r.sess.Store().Get(id)
	if !ok {
		fmt.Fprintf(r.out, "%s no existe el producto %d\n", ErrorStyle.Render("[Error]"), id)
		return catalog.Product{}, false
	}
	return p, true
}

func (r *REPL) printProduct(p catalog.Product) {
	fmt.Fprintln(r.out, components.RenderProductLine(p))
	if p.Description != "" {
		fmt.Fprintln(r.out, DimStyle.Render("  "+p.Description))
	}
}

// =============================================================================
// PURCHASE
// =============================================================================

// buyFields are asked in order; the labels double as the names printed
// for rejected fields.
var buyFields = []struct {
	key   string
	label string
}{
	{"name", "Nombre completo"},
	{"email", "Correo"},
	{"phone", "Teléfono"},
	{"address", "Dirección"},
	{"zip", "Código postal"},
	{"quantity", "Cantidad"},
	{"card", "Tarjeta"},
}

func fieldLabel(key string) string {
	for _, f := range buyFields {
		if f.key == key {
			return f.label
		}
	}
	return key
}

// buy asks for each purchase field and submits the order. Ending input
// mid-form cancels the purchase.
func (r *REPL) buy(ctx context.Context, p catalog.Product) {
	if !p.Available {
		fmt.Fprintf(r.out, "%s Producto agotado: %s\n", ErrorStyle.Render("[Error]"), p.Name)
		return
	}

	fmt.Fprintf(r.out, "%s %s\n", TitleStyle.Render("Finalizar compra"), components.RenderProductLine(p))
	values := make(map[string]string, len(buyFields))
	for _, f := range buyFields {
		label := f.label
		if f.key == "quantity" {
			label += " [1]"
		}
		v, err := r.prompt(PromptStyle.Render(label + ": "))
		if err != nil {
			fmt.Fprintln(r.out, WarningStyle.Render("Compra cancelada"))
			return
		}
		values[f.key] = strings.TrimSpace(v)
	}

	if values["quantity"] == "" {
		values["quantity"] = "1"
	}
	qty, err := order.ParseQuantity(values["quantity"])
	if err != nil {
		r.printOrderError(err)
		return
	}

	conf, err := r.sess.PlaceOrder(ctx, order.Request{
		Product:  p,
		Quantity: qty,
		Contact: order.Contact{
			Name:    values["name"],
			Email:   values["email"],
			Phone:   values["phone"],
			Address: values["address"],
			Zip:     values["zip"],
		},
		PaymentRef: values["card"],
	})
	if err != nil {
		r.printOrderError(err)
		return
	}

	fmt.Fprintln(r.out, SuccessStyle.Render(order.Notice(conf)))
	fmt.Fprintf(r.out, "%s %s\n", RenderLabel("Pedido"), conf.OrderID)
	fmt.Fprintf(r.out, "%s %s\n", RenderLabel("Total"), catalog.FormatPrice(conf.Total))
	fmt.Fprintf(r.out, "%s %s\n", RenderLabel("Tarjeta"), conf.PaymentRef)
}

func (r *REPL) printOrderError(err error) {
	var many order.ValidationErrors
	var one order.ValidationError
	switch {
	case errors.As(err, &many):
	case errors.As(err, &one):
		many = order.ValidationErrors{one}
	default:
		fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		return
	}

	fmt.Fprintln(r.out, styles.RenderError("No se pudo completar la compra:"))
	for _, e := range many {
		msg := e.Message
		if msg == "is required" {
			msg = "campo obligatorio"
		}
		fmt.Fprintf(r.out, "  - %s: %s\n", fieldLabel(e.Field), msg)
	}
}

// =============================================================================
// COMMAND
// =============================================================================

// HandleChat handles "agente chat".
func HandleChat(args Args) error {
	if !IsTTY() {
		return &TTYRequiredError{Operation: "chatear"}
	}

	cfg, warn := LoadConfig(args)
	if cfg == nil {
		return warn
	}
	if warn != nil && !args.Quiet {
		fmt.Fprintf(os.Stderr, "%s %v\n", WarningStyle.Render("[Aviso]"), warn)
	}
	InitLogging(cfg)
	defer obs.Close()

	sess, err := OpenSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Dispose()

	in := NewChatCLI()
	defer in.Close()

	return NewREPL(sess, os.Stdout, in.ReadInput).Run(context.Background())
}
