// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/config"
	"github.com/Lavavago/Agente/internal/session"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command is one slash command of the chat input.
type Command struct {
	Name    string   // "/buy", always lower case with the slash
	Aliases []string // "/comprar"

	Description string
	Usage       string // "/buy <id>"; empty when there are no arguments
	Args        []ArgDef

	// Handler runs with arguments already validated against Args.
	Handler func(ctx *Context, args []string) tea.Cmd

	Hidden   bool   // left out of help and completion
	Category string // help section; empty files under General
}

// ArgDef describes one positional argument.
type ArgDef struct {
	Name        string
	Required    bool
	Type        ArgType
	Description string
	Values      []string // accepted values of an ArgTypeEnum
}

// ArgType picks validation and Tab completion for an argument.
type ArgType int

const (
	ArgTypeString  ArgType = iota
	ArgTypeEnum    // one of ArgDef.Values
	ArgTypeProduct // product id, completed from the catalog
	ArgTypeNumber
)

// Help categories, in display order.
const (
	CategoryShopping     = "Compras"
	CategoryConversation = "Conversación"
	CategoryAudio        = "Audio"
	CategoryGeneral      = "General"
)

var categoryOrder = []string{CategoryShopping, CategoryConversation, CategoryAudio, CategoryGeneral}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry resolves names and aliases to commands and remembers the order
// commands were registered in, which is the order help lists them.
type Registry struct {
	lookup map[string]*Command // names and aliases
	order  []*Command
}

// NewRegistry returns a registry holding the built-in commands.
func NewRegistry() *Registry {
	r := &Registry{lookup: make(map[string]*Command)}
	for _, cmd := range builtins() {
		r.Register(cmd)
	}
	return r
}

// Register adds cmd. A second command with the same name takes the place
// of the first.
func (r *Registry) Register(cmd *Command) {
	if i := slices.IndexFunc(r.order, func(c *Command) bool { return c.Name == cmd.Name }); i >= 0 {
		r.order[i] = cmd
	} else {
		r.order = append(r.order, cmd)
	}
	r.lookup[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.lookup[alias] = cmd
	}
}

// Get returns the command for a name or alias, or nil.
func (r *Registry) Get(name string) *Command {
	return r.lookup[name]
}

// All returns every command in registration order, hidden ones included.
func (r *Registry) All() []*Command {
	return slices.Clone(r.order)
}

func (r *Registry) visible() []*Command {
	return slices.DeleteFunc(r.All(), func(c *Command) bool { return c.Hidden })
}

// ByCategory groups the visible commands by help category.
func (r *Registry) ByCategory() map[string][]*Command {
	groups := make(map[string][]*Command)
	for _, cmd := range r.visible() {
		cat := cmd.Category
		if cat == "" {
			cat = CategoryGeneral
		}
		groups[cat] = append(groups[cat], cmd)
	}
	return groups
}

// Names returns the visible primary names, sorted.
func (r *Registry) Names() []string {
	var names []string
	for _, cmd := range r.visible() {
		names = append(names, cmd.Name)
	}
	slices.Sort(names)
	return names
}

// Dispatch runs the command named by a parse result. Unknown commands and
// argument errors come back as an ErrorMsg instead of running anything.
func (r *Registry) Dispatch(ctx *Context, result ParseResult) tea.Cmd {
	cmd := result.Command
	switch {
	case !result.IsCommand:
		return nil
	case cmd == nil:
		return errorCmd("Comando desconocido", result.CommandName, "Escribe /help para ver los comandos")
	}
	if err := ValidateArgs(cmd, result.Args); err != nil {
		tip := ""
		if cmd.Usage != "" {
			tip = "Uso: " + cmd.Usage
		}
		return errorCmd("Argumentos inválidos", err.Error(), tip)
	}
	if cmd.Handler == nil {
		return nil
	}
	return cmd.Handler(ctx, result.Args)
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func builtins() []*Command {
	return []*Command{
		// Shopping
		{
			Name:        "/catalog",
			Aliases:     []string{"/catalogo", "/cat"},
			Description: "Ver el catálogo completo",
			Category:    CategoryShopping,
			Handler:     HandleCatalog,
		},
		{
			Name:        "/buy",
			Aliases:     []string{"/comprar"},
			Description: "Comprar un producto",
			Usage:       "/buy <id>",
			Args: []ArgDef{
				{Name: "id", Required: true, Type: ArgTypeProduct, Description: "id del producto"},
			},
			Category: CategoryShopping,
			Handler:  HandleBuy,
		},
		{
			Name:        "/info",
			Description: "Preguntar por un producto",
			Usage:       "/info <id>",
			Args: []ArgDef{
				{Name: "id", Required: true, Type: ArgTypeProduct, Description: "id del producto"},
			},
			Category: CategoryShopping,
			Handler:  HandleInfo,
		},
		// Conversation
		{
			Name:        "/clear",
			Aliases:     []string{"/c"},
			Description: "Borrar la conversación",
			Category:    CategoryConversation,
			Handler:     HandleClear,
		},
		{
			Name:        "/export",
			Description: "Exportar la conversación a un archivo",
			Usage:       "/export [md|json]",
			Args: []ArgDef{
				{Name: "format", Type: ArgTypeEnum, Values: []string{"md", "markdown", "json"}, Description: "formato"},
			},
			Category: CategoryConversation,
			Handler:  HandleExport,
		},
		{
			Name:        "/copy",
			Description: "Copiar la última respuesta del agente",
			Category:    CategoryConversation,
			Handler:     HandleCopy,
		},
		// Audio
		{
			Name:        "/audio",
			Description: "Activar, desactivar o detener el audio",
			Usage:       "/audio [on|off|stop]",
			Args: []ArgDef{
				{Name: "action", Type: ArgTypeEnum, Values: []string{"on", "off", "stop"}, Description: "acción"},
			},
			Category: CategoryAudio,
			Handler:  HandleAudio,
		},
		{
			Name:        "/volume",
			Aliases:     []string{"/vol"},
			Description: "Ajustar el volumen",
			Usage:       "/volume <0-1>",
			Args: []ArgDef{
				{Name: "level", Required: true, Type: ArgTypeNumber, Description: "número entre 0 y 1"},
			},
			Category: CategoryAudio,
			Handler:  HandleVolume,
		},
		// General
		{
			Name:        "/help",
			Aliases:     []string{"/h", "/?", "/ayuda"},
			Description: "Mostrar la ayuda",
			Category:    CategoryGeneral,
			Handler:     HandleHelp,
		},
		{
			Name:        "/quit",
			Aliases:     []string{"/q", "/exit", "/salir"},
			Description: "Salir",
			Category:    CategoryGeneral,
			Handler:     HandleQuit,
		},
	}
}

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context is what a handler may touch. Either field may be nil, which
// tests use to run handlers alone.
type Context struct {
	Session *session.Session
	Config  *config.Config
}

// NewContext bundles a session and its configuration.
func NewContext(sess *session.Session, cfg *config.Config) *Context {
	return &Context{Session: sess, Config: cfg}
}

// Store returns the session catalog, or the built-in one without a session.
func (c *Context) Store() *catalog.Store {
	if c != nil && c.Session != nil {
		return c.Session.Store()
	}
	return catalog.Default()
}

// =============================================================================
// COMPLETION TYPE
// =============================================================================

// Completion is one Tab candidate. Value replaces the word being typed;
// Display and Description are what the popup shows.
type Completion struct {
	Value       string
	Display     string
	Description string
	Score       int // higher ranks first
}
