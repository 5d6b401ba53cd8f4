// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/help", true},
		{"/buy 2", true},
		{"  /help", true},
		{"hola", false},
		{"hola /help", false},
		{"", false},
		{"/", true},
	}

	for _, tc := range tests {
		if got := IsCommand(tc.input); got != tc.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestExtractCommandName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/help", "/help"},
		{"/buy 2", "/buy"},
		{"  /volume  0.5 ", "/volume"},
		{"hola", ""},
		{"/", "/"},
	}

	for _, tc := range tests {
		if got := ExtractCommandName(tc.input); got != tc.want {
			t.Errorf("ExtractCommandName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestGetPartialCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/he", "/he"},
		{"/help", "/help"},
		{"/buy ", ""},
		{"/buy 2", ""},
		{"hola", ""},
	}

	for _, tc := range tests {
		if got := GetPartialCommand(tc.input); got != tc.want {
			t.Errorf("GetPartialCommand(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"2", []string{"2"}},
		{"  on   ", []string{"on"}},
		{`"Mesa de Centro" 2`, []string{"Mesa de Centro", "2"}},
		{`Sillón 'Mesa Nórdica'`, []string{"Sillón", "Mesa Nórdica"}},
		{`a "" b`, []string{"a", "", "b"}},
		{`"di \"hola\""`, []string{`di "hola"`}},
	}

	for _, tc := range tests {
		got := ParseArgs(tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseArgs(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParser_Parse(t *testing.T) {
	p := NewParser(NewRegistry())

	r := p.Parse("  /BUY 2 ")
	require.True(t, r.IsCommand)
	require.Equal(t, "/buy", r.CommandName)
	require.NotNil(t, r.Command)
	require.Equal(t, []string{"2"}, r.Args)
	require.Equal(t, "2", r.RawArgs)

	r = p.Parse("/comprar 4")
	require.NotNil(t, r.Command)
	require.Equal(t, "/buy", r.Command.Name)

	r = p.Parse("/nada")
	require.True(t, r.IsCommand)
	require.Nil(t, r.Command)

	r = p.Parse("hola")
	require.False(t, r.IsCommand)
	require.Equal(t, "hola", r.RawInput)
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistry_Builtins(t *testing.T) {
	r := NewRegistry()
	want := []string{"/audio", "/buy", "/catalog", "/clear", "/copy", "/export", "/help", "/info", "/quit", "/volume"}
	require.Equal(t, want, r.Names())

	for _, alias := range []string{"/h", "/?", "/q", "/exit", "/c", "/vol"} {
		if r.Get(alias) == nil {
			t.Errorf("alias %s not registered", alias)
		}
	}
	require.Nil(t, r.Get("/model"))
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	n := len(r.All())
	r.Register(&Command{Name: "/help", Description: "otra"})
	require.Len(t, r.All(), n)
	require.Equal(t, "otra", r.Get("/help").Description)
}

func TestRegistry_ByCategory(t *testing.T) {
	cats := NewRegistry().ByCategory()
	require.Len(t, cats[CategoryShopping], 3)
	require.Len(t, cats[CategoryAudio], 2)
	require.Equal(t, "/catalog", cats[CategoryShopping][0].Name)
}

// =============================================================================
// DISPATCH TESTS
// =============================================================================

func dispatch(t *testing.T, input string) tea.Msg {
	t.Helper()
	r := NewRegistry()
	cmd := r.Dispatch(NewContext(nil, nil), NewParser(r).Parse(input))
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		input string
		want  tea.Msg
	}{
		{"/help", ShowHelpMsg{}},
		{"/clear", ClearConversationMsg{}},
		{"/catalog", SendTextMsg{Text: "Ver catálogo"}},
		{"/info 1", SendTextMsg{Text: "¿Qué me puedes decir sobre Sillón Modular Lusso?"}},
		{"/export", ExportConversationMsg{Format: "md"}},
		{"/export markdown", ExportConversationMsg{Format: "md"}},
		{"/export JSON", ExportConversationMsg{Format: "json"}},
		{"/copy", CopyToClipboardMsg{}},
		{"/audio", AudioMsg{Action: AudioToggle}},
		{"/audio OFF", AudioMsg{Action: AudioOff}},
		{"/audio stop", AudioMsg{Action: AudioStop}},
		{"/volume 0.5", VolumeMsg{Volume: 0.5}},
		{"/volume 0,3", VolumeMsg{Volume: 0.3}},
		{"/volume 1", VolumeMsg{Volume: 1}},
		{"/quit", tea.QuitMsg{}},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := dispatch(t, tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Dispatch(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDispatch_Buy(t *testing.T) {
	msg, ok := dispatch(t, "/buy 2").(OpenPurchaseMsg)
	require.True(t, ok)
	require.Equal(t, 2, msg.Product.ID)
	require.Equal(t, "Mesa de Centro Nórdica", msg.Product.Name)

	msg, ok = dispatch(t, "/buy [5]").(OpenPurchaseMsg)
	require.True(t, ok)
	require.Equal(t, 5, msg.Product.ID)
}

func TestDispatch_Errors(t *testing.T) {
	tests := []struct {
		input string
		title string
	}{
		{"/nada", "Comando desconocido"},
		{"/buy", "Argumentos inválidos"},
		{"/buy 3", "Producto agotado"},
		{"/buy 99", "Producto no encontrado"},
		{"/buy silla", "Id inválido"},
		{"/info 0", "Producto no encontrado"},
		{"/audio fuerte", "Argumentos inválidos"},
		{"/export html", "Argumentos inválidos"},
		{"/volume", "Argumentos inválidos"},
		{"/volume 2", "Volumen inválido"},
		{"/volume -0.1", "Volumen inválido"},
		{"/volume alto", "Volumen inválido"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			msg, ok := dispatch(t, tc.input).(ErrorMsg)
			if !ok {
				t.Fatalf("Dispatch(%q) did not return ErrorMsg", tc.input)
			}
			if msg.Title != tc.title {
				t.Errorf("Dispatch(%q) title = %q, want %q", tc.input, msg.Title, tc.title)
			}
		})
	}
}

func TestDispatch_NotACommand(t *testing.T) {
	require.Nil(t, dispatch(t, "hola"))
}

func TestHandleVolume_NoArgs(t *testing.T) {
	msg := HandleVolume(nil, nil)()
	_, ok := msg.(ErrorMsg)
	require.True(t, ok)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Command: "/audio", Arg: "action", Message: "valor inválido", Got: "x", Expected: "on, off"}
	require.Equal(t, "/audio: valor inválido (action): x; se esperaba on, off", err.Error())
}

// =============================================================================
// HELP TESTS
// =============================================================================

func TestGenerateHelpText(t *testing.T) {
	help := GenerateHelpText(NewRegistry())

	for _, want := range []string{"Comandos disponibles", "/buy <id>", "/volume <0-1>", "/export [md|json]", "F1", "Esc"} {
		if !strings.Contains(help, want) {
			t.Errorf("help text missing %q", want)
		}
	}
	require.Less(t, strings.Index(help, CategoryShopping), strings.Index(help, CategoryGeneral))
}
