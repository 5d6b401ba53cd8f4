// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is one line of chat input split into a slash command and its
// arguments.
type ParseResult struct {
	// IsCommand is true when the input starts with "/"
	IsCommand bool

	// Command is nil for an unknown name
	Command *Command

	// CommandName is lower-cased, slash included ("/buy")
	CommandName string

	Args []string

	// RawInput is the trimmed input
	RawInput string

	// RawArgs is everything after the command name, trimmed
	RawArgs string
}

// =============================================================================
// PARSER
// =============================================================================

// Parser resolves slash commands against a registry.
type Parser struct {
	registry *Registry
}

// NewParser creates a parser. A nil registry parses without resolving.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse splits input. Text that is not a command comes back with only
// RawInput set.
func (p *Parser) Parse(input string) ParseResult {
	res := ParseResult{RawInput: strings.TrimSpace(input)}
	name := ExtractCommandName(res.RawInput)
	if name == "" {
		return res
	}

	res.IsCommand = true
	res.CommandName = strings.ToLower(name)
	res.RawArgs = strings.TrimSpace(strings.TrimPrefix(res.RawInput, name))
	res.Args = ParseArgs(res.RawArgs)
	if p.registry != nil {
		res.Command = p.registry.Get(res.CommandName)
	}
	return res
}

// ParseArgs splits an argument string on whitespace. Single or double
// quotes group words ("Mesa de Centro"); inside quotes a backslash escapes
// a quote or another backslash. An empty quoted pair is an empty argument.
func ParseArgs(input string) []string {
	var t tokenizer
	for _, r := range input {
		t.feed(r)
	}
	t.flush()
	return t.tokens
}

// tokenizer is the state of ParseArgs.
type tokenizer struct {
	tokens  []string
	buf     strings.Builder
	quote   rune // 0 outside quotes
	escaped bool
	started bool // a quote opened the current token
}

func (t *tokenizer) feed(r rune) {
	if t.escaped {
		t.escaped = false
		if r != '"' && r != '\'' && r != '\\' {
			t.buf.WriteRune('\\')
		}
		t.buf.WriteRune(r)
		return
	}

	switch {
	case t.quote != 0 && r == '\\':
		t.escaped = true
	case t.quote != 0 && r == t.quote:
		t.quote = 0
	case t.quote == 0 && (r == '"' || r == '\''):
		t.quote = r
		t.started = true
	case t.quote == 0 && unicode.IsSpace(r):
		t.flush()
	default:
		t.buf.WriteRune(r)
	}
}

func (t *tokenizer) flush() {
	if t.escaped {
		t.buf.WriteRune('\\')
		t.escaped = false
	}
	if t.buf.Len() > 0 || t.started {
		t.tokens = append(t.tokens, t.buf.String())
	}
	t.buf.Reset()
	t.started = false
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

// IsCommand reports whether input starts with a slash.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// ExtractCommandName returns the first word of a command ("/buy 3" gives
// "/buy"), or "" for plain text.
func ExtractCommandName(input string) string {
	input = strings.TrimSpace(input)
	if !IsCommand(input) {
		return ""
	}
	name, _, _ := strings.Cut(input, " ")
	if i := strings.IndexFunc(name, unicode.IsSpace); i >= 0 {
		name = name[:i]
	}
	return name
}

// GetPartialCommand returns input while the command name is still being
// typed, and "" once a space follows it.
func GetPartialCommand(input string) string {
	if strings.HasPrefix(input, "/") && !strings.ContainsFunc(input, unicode.IsSpace) {
		return input
	}
	return ""
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateArgs checks required arguments and enum values.
func ValidateArgs(cmd *Command, args []string) error {
	if cmd == nil {
		return nil
	}
	for i, def := range cmd.Args {
		if i >= len(args) {
			if def.Required {
				return &ValidationError{
					Command:  cmd.Name,
					Arg:      def.Name,
					Message:  "falta un argumento obligatorio",
					Expected: def.Description,
				}
			}
			continue
		}
		if def.Type != ArgTypeEnum || len(def.Values) == 0 {
			continue
		}
		lower := strings.ToLower(args[i])
		if !slices.ContainsFunc(def.Values, func(v string) bool { return strings.ToLower(v) == lower }) {
			return &ValidationError{
				Command:  cmd.Name,
				Arg:      def.Name,
				Message:  "valor inválido",
				Got:      args[i],
				Expected: strings.Join(def.Values, ", "),
			}
		}
	}
	return nil
}

// ValidationError is a rejected command argument.
type ValidationError struct {
	Command  string
	Arg      string
	Message  string
	Got      string
	Expected string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Command, e.Message)
	if e.Arg != "" {
		fmt.Fprintf(&sb, " (%s)", e.Arg)
	}
	if e.Got != "" {
		fmt.Fprintf(&sb, ": %s", e.Got)
	}
	if e.Expected != "" {
		fmt.Fprintf(&sb, "; se esperaba %s", e.Expected)
	}
	return sb.String()
}
