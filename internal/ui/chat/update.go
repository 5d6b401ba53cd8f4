// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/commands"
	"github.com/Lavavago/Agente/internal/obs"
	"github.com/Lavavago/Agente/internal/order"
	"github.com/Lavavago/Agente/internal/session"
	"github.com/Lavavago/Agente/internal/ui/components"
)

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	vpHeight := msg.Height - reservedLines
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight

	// Prompt "> " plus the container padding.
	inputWidth := msg.Width - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	if m.form != nil {
		m.form.SetWidth(formWidth(msg.Width))
	}

	m.refreshViewport()
	return m, nil
}

func formWidth(screen int) int {
	w := screen - 8
	if w > 72 {
		w = 72
	}
	if w < 40 {
		w = 40
	}
	return w
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// The purchase modal takes every other key.
	if m.form != nil {
		f, cmd := m.form.Update(msg)
		m.form = &f
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Cancel, m.keys.Help, m.keys.Submit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.cancelPending()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	// Input and quick actions are disabled while thinking.
	if m.sess.IsPending() {
		return m, nil
	}

	if action, ok := components.QuickActionForKey(msg.String()); ok {
		return m.submit(action.Text)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleAudio):
		return m.handleAudio(commands.AudioMsg{Action: commands.AudioToggle})
	case key.Matches(msg, m.keys.Complete):
		return m.handleTabCompletion()
	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()
	}

	m.resetCompletions()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit sends the input text, or runs it as a slash command.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.resetCompletions()

	if commands.IsCommand(text) {
		result := m.parser.Parse(text)
		obs.Logger.Debug("command", "name", result.CommandName, "args", len(result.Args))
		return m, m.registry.Dispatch(m.cmdCtx, result)
	}
	return m.submit(text)
}

// =============================================================================
// REQUESTS
// =============================================================================

// submit starts a request for text. The input stays disabled until the
// reply lands or the request is cancelled.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	p, err := m.sess.Submit(text)
	if err != nil {
		if errors.Is(err, session.ErrEmptyInput) {
			return m, nil
		}
		cmd := m.notify(components.ToastError, "No se pudo enviar", err.Error())
		return m, cmd
	}

	m.input.Blur()
	m.refreshViewport()
	cmd := tea.Batch(resolveCmd(m.sess, p), m.typing.Start())
	return m, cmd
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.sess.Complete(msg.Seq, msg.Reply); !ok {
		return m, nil
	}
	m.typing.Stop()
	m.refreshViewport()

	cmds := []tea.Cmd{m.input.Focus()}
	if m.sess.Audio().Speaking {
		cmds = append(cmds, speakingDoneCmd(m.sess.SpeakFor()))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleReplyFailed(msg ReplyFailedMsg) (tea.Model, tea.Cmd) {
	if !m.sess.Fail(msg.Seq) {
		// Cancelled or superseded; whoever did that already cleaned up.
		return m, nil
	}
	m.typing.Stop()
	cmd := m.input.Focus()
	if errors.Is(msg.Err, context.Canceled) {
		return m, cmd
	}
	cmd = tea.Batch(cmd, m.notify(components.ToastError, "Sin respuesta", msg.Err.Error()))
	return m, cmd
}

func (m Model) cancelPending() (tea.Model, tea.Cmd) {
	if len(m.completions) > 0 {
		m.resetCompletions()
		return m, nil
	}
	if !m.sess.Cancel() {
		return m, nil
	}
	m.typing.Stop()
	cmd := tea.Batch(m.input.Focus(), m.notify(components.ToastInfo, "Consulta cancelada", ""))
	return m, cmd
}

// =============================================================================
// COMMAND RESULTS
// =============================================================================

func (m Model) handleClear() (tea.Model, tea.Cmd) {
	m.sess.Clear()
	m.refreshViewport()
	cmd := m.notify(components.ToastInfo, "Conversación borrada", "")
	return m, cmd
}

func (m Model) openPurchase(msg commands.OpenPurchaseMsg) (tea.Model, tea.Cmd) {
	f := components.NewPurchaseForm(m.theme, msg.Product)
	f.SetWidth(formWidth(m.width))
	m.form = &f
	m.input.Blur()
	return m, f.Init()
}

func (m Model) handleOrderResult(msg OrderResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.form != nil && errors.Is(msg.Err, order.ErrValidation) {
			m.form.SetErrors(msg.Err)
			cmd := m.notify(components.ToastError, "Revisa el formulario", "Hay campos incompletos o inválidos")
			return m, cmd
		}
		cmd := m.notify(components.ToastError, "No se pudo completar la compra", msg.Err.Error())
		return m, cmd
	}

	m.form = nil
	conf := msg.Confirmation
	detail := fmt.Sprintf("%d x %s, total %s. Pedido %s",
		conf.Quantity, conf.ProductName, catalog.FormatPrice(conf.Total), shortID(conf.OrderID))
	cmd := tea.Batch(m.input.Focus(), m.notify(components.ToastSuccess, order.Notice(conf), detail))
	return m, cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m Model) handleAudio(msg commands.AudioMsg) (tea.Model, tea.Cmd) {
	var a session.Audio
	switch msg.Action {
	case commands.AudioOn:
		a = m.sess.SetAudioEnabled(true)
	case commands.AudioOff:
		a = m.sess.SetAudioEnabled(false)
	case commands.AudioStop:
		m.sess.StopSpeaking()
		a = m.sess.Audio()
	default:
		a = m.sess.ToggleAudio()
	}
	cmd := m.notify(components.ToastInfo, a.Label(), "")
	return m, cmd
}

func (m Model) handleVolume(msg commands.VolumeMsg) (tea.Model, tea.Cmd) {
	if err := m.sess.SetVolume(msg.Volume); err != nil {
		if errors.Is(err, session.ErrAudioDisabled) {
			cmd := m.notify(components.ToastError, "Audio desactivado", "Activa el audio con /audio on para cambiar el volumen")
			return m, cmd
		}
		cmd := m.notify(components.ToastError, "Volumen inválido", err.Error())
		return m, cmd
	}
	cmd := m.notify(components.ToastInfo, fmt.Sprintf("Volumen %d%%", m.sess.Audio().VolumePercent()), "")
	return m, cmd
}

func (m Model) handleExportComplete(msg ExportCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		cmd := m.notify(components.ToastError, "No se pudo exportar", msg.Err.Error())
		return m, cmd
	}
	cmd := m.notify(components.ToastSuccess, "Conversación exportada", msg.Path)
	return m, cmd
}

func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	last := m.sess.LastAgentMessage()
	if last == nil || strings.TrimSpace(last.Text) == "" {
		cmd := m.notify(components.ToastError, "Nada que copiar", "El agente aún no ha respondido")
		return m, cmd
	}
	return m, copyCmd(last.Text)
}

func (m Model) handleClipboardResult(msg ClipboardResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		cmd := m.notify(components.ToastError, "No se pudo copiar", msg.Err.Error())
		return m, cmd
	}
	cmd := m.notify(components.ToastSuccess, "Copiado", fmt.Sprintf("%d caracteres", msg.Chars))
	return m, cmd
}
