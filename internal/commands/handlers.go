// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lavavago/Agente/internal/catalog"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// These messages are sent by command handlers to update the chat.

// ShowHelpMsg triggers the help display.
type ShowHelpMsg struct{}

// ClearConversationMsg triggers clearing the conversation.
type ClearConversationMsg struct{}

// SendTextMsg submits text to the agent as if the shopper had typed it.
type SendTextMsg struct {
	Text string
}

// OpenPurchaseMsg opens the purchase form for a product.
type OpenPurchaseMsg struct {
	Product catalog.Product
}

// AudioAction is what /audio asks for.
type AudioAction string

const (
	AudioToggle AudioAction = "toggle"
	AudioOn     AudioAction = "on"
	AudioOff    AudioAction = "off"
	AudioStop   AudioAction = "stop"
)

// AudioMsg changes the audio controls.
type AudioMsg struct {
	Action AudioAction
}

// VolumeMsg sets the volume.
type VolumeMsg struct {
	Volume float64
}

// ExportConversationMsg triggers exporting the conversation.
type ExportConversationMsg struct {
	Format string // "md" or "json"
}

// CopyToClipboardMsg copies the last agent reply.
type CopyToClipboardMsg struct{}

// ErrorMsg indicates an error occurred.
type ErrorMsg struct {
	Title   string
	Message string
	Tip     string
}

func errorCmd(title, message, tip string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Title: title, Message: message, Tip: tip}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// =============================================================================
// HANDLER IMPLEMENTATIONS
// =============================================================================

// CatalogQuery is the text /catalog sends; it matches the catalog rule.
const CatalogQuery = "Ver catálogo"

// InfoQuery builds the question /info asks about a product.
func InfoQuery(name string) string {
	return fmt.Sprintf("¿Qué me puedes decir sobre %s?", name)
}

// HandleHelp shows help information.
func HandleHelp(ctx *Context, args []string) tea.Cmd {
	return msgCmd(ShowHelpMsg{})
}

// HandleQuit exits the application.
func HandleQuit(ctx *Context, args []string) tea.Cmd {
	return tea.Quit
}

// HandleClear clears the conversation history.
func HandleClear(ctx *Context, args []string) tea.Cmd {
	return msgCmd(ClearConversationMsg{})
}

// HandleCatalog asks the agent for the full catalog.
func HandleCatalog(ctx *Context, args []string) tea.Cmd {
	return msgCmd(SendTextMsg{Text: CatalogQuery})
}

// HandleBuy opens the purchase form for an available product.
func HandleBuy(ctx *Context, args []string) tea.Cmd {
	p, errCmd := lookupProduct(ctx, args)
	if errCmd != nil {
		return errCmd
	}
	if !p.Available {
		return errorCmd("Producto agotado", "Este producto no está disponible", "Escribe /catalog para ver otros productos")
	}
	return msgCmd(OpenPurchaseMsg{Product: p})
}

// HandleInfo asks the agent about a product.
func HandleInfo(ctx *Context, args []string) tea.Cmd {
	p, errCmd := lookupProduct(ctx, args)
	if errCmd != nil {
		return errCmd
	}
	return msgCmd(SendTextMsg{Text: InfoQuery(p.Name)})
}

// HandleExport exports the conversation.
func HandleExport(ctx *Context, args []string) tea.Cmd {
	format := "md"
	if len(args) > 0 {
		format = strings.ToLower(args[0])
		if format == "markdown" {
			format = "md"
		}
	}
	return msgCmd(ExportConversationMsg{Format: format})
}

// HandleCopy copies the last agent reply to the clipboard.
func HandleCopy(ctx *Context, args []string) tea.Cmd {
	return msgCmd(CopyToClipboardMsg{})
}

// HandleAudio toggles the audio, or sets it with on/off, or stops speech.
func HandleAudio(ctx *Context, args []string) tea.Cmd {
	action := AudioToggle
	if len(args) > 0 {
		action = AudioAction(strings.ToLower(args[0]))
	}
	return msgCmd(AudioMsg{Action: action})
}

// HandleVolume sets the volume to a number in [0,1].
func HandleVolume(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Volumen", "falta el nivel", "Uso: /volume <0-1>")
	}
	v, err := strconv.ParseFloat(strings.Replace(args[0], ",", ".", 1), 64)
	if err != nil || v < 0 || v > 1 {
		return errorCmd("Volumen inválido", fmt.Sprintf("%q no es un número entre 0 y 1", args[0]), "Ejemplo: /volume 0.5")
	}
	return msgCmd(VolumeMsg{Volume: v})
}

// lookupProduct resolves the id argument against the session catalog.
func lookupProduct(ctx *Context, args []string) (catalog.Product, tea.Cmd) {
	if len(args) == 0 {
		return catalog.Product{}, errorCmd("Falta el producto", "indica el id del producto", "Los ids aparecen entre corchetes en cada tarjeta")
	}
	id, err := strconv.Atoi(strings.Trim(args[0], "[]#"))
	if err != nil {
		return catalog.Product{}, errorCmd("Id inválido", fmt.Sprintf("%q no es un id de producto", args[0]), "Los ids son números, por ejemplo /buy 2")
	}
	p, ok := ctx.Store().Get(id)
	if !ok {
		return catalog.Product{}, errorCmd("Producto no encontrado", fmt.Sprintf("no existe el producto %d", id), "Escribe /catalog para ver los productos")
	}
	return p, nil
}

// =============================================================================
// HELP TEXT GENERATION
// =============================================================================

// GenerateHelpText renders the command list grouped by category, followed
// by the keyboard shortcuts.
func GenerateHelpText(r *Registry) string {
	var sb strings.Builder

	sb.WriteString("Comandos disponibles\n")
	sb.WriteString("====================\n\n")

	categories := r.ByCategory()
	for _, category := range categoryOrder {
		cmds, ok := categories[category]
		if !ok || len(cmds) == 0 {
			continue
		}
		sb.WriteString(category + "\n")
		for _, cmd := range cmds {
			name := cmd.Name
			if cmd.Usage != "" {
				name = cmd.Usage
			}
			sb.WriteString(fmt.Sprintf("  %-22s%s\n", name, cmd.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Atajos de teclado\n")
	sb.WriteString("  F1                    Ver catálogo\n")
	sb.WriteString("  F2                    Productos populares\n")
	sb.WriteString("  F3                    Sofás modulares\n")
	sb.WriteString("  F4                    Saludar\n")
	sb.WriteString("  F6                    Activar o desactivar el audio\n")
	sb.WriteString("  F10                   Mostrar u ocultar esta ayuda\n")
	sb.WriteString("  Esc                   Cancelar la consulta en curso\n")
	sb.WriteString("  RePág/AvPág           Desplazar la conversación\n")
	sb.WriteString("  Tab                   Autocompletar comandos\n")
	sb.WriteString("  Ctrl+C                Salir\n")

	return sb.String()
}
