// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Argument parsing and top-level command routing for agente.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdCatalog
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name used in JSON output.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdCatalog:
		return "catalog"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath  string
	CatalogPath string
	NoDelay     bool
	JSON        bool
	Quiet       bool
	Verbose     bool

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Name is the command as typed, kept for suggestions.
	Name string

	// Raw args (remaining after the command name)
	Raw []string
}

const usageText = `agente - asistente de compras de muebles en la terminal

Uso:
  agente                      Abrir la interfaz de chat (por defecto)
  agente ask "pregunta"       Hacer una sola pregunta
  agente chat                 Chat interactivo en modo línea
  agente catalog [TEXTO]      Listar el catálogo
    --search TEXTO            Filtrar por nombre (igual que TEXTO)
    --discount N              Solo productos con más de N% de descuento
    --available               Solo productos disponibles
  agente config [show|get|set|reset|keys|path]
                              Ver o cambiar la configuración
  agente version              Mostrar la versión
  agente help                 Mostrar esta ayuda

Opciones globales:
  --config RUTA     Archivo de configuración (.toml o .json)
  --catalog RUTA    Archivo de catálogo (.toml o .json)
  --no-delay        Responder sin la pausa de "pensando"
  --json            Salida en JSON (ask, catalog, config, version)
  -q, --quiet       Salida mínima
  -v, --verbose     Registro detallado (nivel debug)

Ejemplos:
  agente ask "¿tienen sofás modulares?"
  agente ask --json catálogo
  agente catalog --discount 10
  agente catalog mesa de centro
  agente config set agent.thinking_delay_ms 500
  agente --catalog muebles.toml
`

// PrintUsage writes the help text. usageText is printed as is, never as a
// format string, so it may contain "%".
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
	fmt.Fprintf(w, "\nVersión: %s\n", Version)
}

// HandleHelp prints the help text to stdout.
func HandleHelp() {
	PrintUsage(os.Stdout)
}

// VersionData is the JSON form of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func versionData() VersionData {
	return VersionData{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// PrintVersion writes version information, as JSON when jsonMode is set.
func PrintVersion(w io.Writer, jsonMode bool) error {
	data := versionData()
	if jsonMode {
		return NewJSONResponse("version", data).Write(w)
	}
	fmt.Fprintf(w, "agente version %s\n", data.Version)
	fmt.Fprintf(w, "  Git commit: %s\n", data.GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", data.BuildDate)
	fmt.Fprintf(w, "  Go:         %s (%s)\n", data.GoVersion, data.Platform)
	return nil
}

// HandleVersion prints version information to stdout.
func HandleVersion(args Args) error {
	return PrintVersion(os.Stdout, args.JSON)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments and returns the command and args.
// Global flags may appear anywhere.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	name := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Name = name
	parsed.Raw = remaining

	switch name {
	case "tui":
		return CmdTUI, parsed

	case "ask", "preguntar":
		parsed.Query = strings.TrimSpace(strings.Join(remaining, " "))
		return CmdAsk, parsed

	case "chat", "repl":
		return CmdChat, parsed

	case "catalog", "catalogo", "catálogo", "cat":
		return CmdCatalog, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "version", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help", "ayuda":
		return CmdHelp, parsed

	default:
		return CmdUnknown, parsed
	}
}

// parseGlobalFlags extracts global flags from args and returns what's left.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsed Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--no-delay":
			parsed.NoDelay = true
		case "--json":
			parsed.JSON = true
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--config":
			if i+1 < len(args) {
				i++
				parsed.ConfigPath = args[i]
			}
		case "--catalog":
			if i+1 < len(args) {
				i++
				parsed.CatalogPath = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--config="):
				parsed.ConfigPath = strings.TrimPrefix(arg, "--config=")
			case strings.HasPrefix(arg, "--catalog="):
				parsed.CatalogPath = strings.TrimPrefix(arg, "--catalog=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsed
}

// parseConfigArgs parses "config <sub> [key] [value]".
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = strings.ToLower(remaining[0])
	}
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}

// UnknownCommandError is returned for a command name agente does not know.
type UnknownCommandError struct {
	Name       string
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("comando desconocido %q (¿quisiste decir %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("comando desconocido %q; usa \"agente help\"", e.Name)
}

// HandleUnknown reports an unknown command with a suggestion when one is
// close enough.
func HandleUnknown(args Args) error {
	return &UnknownCommandError{Name: args.Name, Suggestion: SuggestCommand(args.Name)}
}
