// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lavavago/Agente/internal/commands"
	"github.com/Lavavago/Agente/internal/config"
	"github.com/Lavavago/Agente/internal/session"
	"github.com/Lavavago/Agente/internal/ui/components"
	"github.com/Lavavago/Agente/internal/ui/styles"
)

// InputPlaceholder is shown in the empty input.
const InputPlaceholder = "Escribe tu mensaje o /help..."

// Layout heights of the fixed parts around the viewport.
const (
	headerHeight  = 4 // avatar lines
	quickHeight   = 3 // bordered buttons
	inputHeight   = 2 // top border + input line
	statusHeight  = 2 // typing indicator + key hints
	reservedLines = headerHeight + quickHeight + inputHeight + statusHeight
)

// =============================================================================
// MODEL
// =============================================================================

// Options configures a chat Model.
type Options struct {
	// Session is required.
	Session *session.Session

	// Config supplies the export dir and compact cards; nil uses defaults.
	Config *config.Config

	// Theme nil means auto-detected.
	Theme *styles.Theme

	// Registry nil means the built-in commands.
	Registry *commands.Registry
}

// Model is the Bubble Tea model of the chat screen.
type Model struct {
	theme *styles.Theme
	sess  *session.Session
	cfg   *config.Config

	registry  *commands.Registry
	parser    *commands.Parser
	completer *commands.Completer
	cmdCtx    *commands.Context

	width  int
	height int

	viewport viewport.Model
	input    textinput.Model
	typing   components.TypingIndicator
	toasts   *components.ToastManager
	keys     KeyMap

	// form is non-nil while the purchase modal is open.
	form *components.PurchaseForm

	showHelp bool

	// Tab completion cycling.
	completions   []commands.Completion
	completionIdx int

	toastTicking bool
}

// New creates a chat model over an existing session.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = commands.NewRegistry()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.Placeholder = InputPlaceholder
	ti.CharLimit = 500
	ti.Focus()

	completer := commands.NewCompleter(registry)
	completer.ProductsFn = opts.Session.Store().ListAll

	m := Model{
		theme:     theme,
		sess:      opts.Session,
		cfg:       cfg,
		registry:  registry,
		parser:    commands.NewParser(registry),
		completer: completer,
		cmdCtx:    commands.NewContext(opts.Session, cfg),
		width:     80,
		height:    24,
		viewport:  viewport.New(80, 24-reservedLines),
		input:     ti,
		typing:    components.NewTypingIndicator(theme),
		toasts:    components.NewToastManager(),
		keys:      DefaultKeyMap(),
	}
	m.refreshViewport()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	// Agent replies
	case ReplyMsg:
		return m.handleReply(msg)
	case ReplyFailedMsg:
		return m.handleReplyFailed(msg)
	case SpeakingDoneMsg:
		return m, nil

	// Purchase form
	case components.PurchaseSubmitMsg:
		return m, placeOrderCmd(m.sess, msg.Request)
	case components.PurchaseCancelMsg:
		m.form = nil
		cmd := m.input.Focus()
		return m, cmd
	case OrderResultMsg:
		return m.handleOrderResult(msg)

	// Command results
	case commands.ShowHelpMsg:
		m.showHelp = true
		return m, nil
	case commands.ClearConversationMsg:
		return m.handleClear()
	case commands.SendTextMsg:
		return m.submit(msg.Text)
	case commands.OpenPurchaseMsg:
		return m.openPurchase(msg)
	case commands.AudioMsg:
		return m.handleAudio(msg)
	case commands.VolumeMsg:
		return m.handleVolume(msg)
	case commands.ExportConversationMsg:
		return m, exportCmd(m.sess.Conversation(), msg.Format, m.cfg.Export.Dir)
	case ExportCompleteMsg:
		return m.handleExportComplete(msg)
	case commands.CopyToClipboardMsg:
		return m.handleCopy()
	case ClipboardResultMsg:
		return m.handleClipboardResult(msg)
	case commands.ErrorMsg:
		text := msg.Message
		if msg.Tip != "" {
			text += ". " + msg.Tip
		}
		cmd := m.notify(components.ToastError, msg.Title, text)
		return m, cmd

	// Toasts
	case components.ToastTickMsg:
		if m.toasts.Tick() == 0 {
			m.toastTicking = false
			return m, nil
		}
		return m, components.ToastTickCmd()
	}

	// Spinner ticks and cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.typing, cmd = m.typing.Update(msg)
	cmds = append(cmds, cmd)
	if m.form != nil {
		f, cmd := m.form.Update(msg)
		m.form = &f
		cmds = append(cmds, cmd)
	} else {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Session returns the session the model drives.
func (m Model) Session() *session.Session {
	return m.sess
}

// IsThinking reports whether a reply is pending.
func (m Model) IsThinking() bool {
	return m.sess.IsPending()
}

// FormOpen reports whether the purchase modal is showing.
func (m Model) FormOpen() bool {
	return m.form != nil
}

// HelpVisible reports whether the help overlay is showing.
func (m Model) HelpVisible() bool {
	return m.showHelp
}

// Toasts returns the visible notifications.
func (m Model) Toasts() []components.Toast {
	return m.toasts.Toasts()
}

// InputValue returns the current input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// SetInputValue replaces the input text.
func (m *Model) SetInputValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// notify shows a toast and makes sure the sweep tick is running.
func (m *Model) notify(kind components.ToastKind, title, message string) tea.Cmd {
	m.toasts.Add(kind, title, message)
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}

// refreshViewport re-renders the conversation and scrolls to the end.
func (m *Model) refreshViewport() {
	content := components.RenderConversation(m.theme, m.sess.Messages(), m.viewport.Width, m.cfg.UI.Compact)
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}
