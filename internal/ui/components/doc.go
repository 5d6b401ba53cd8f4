// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI pieces of the agente chat.

Each component is either a render function over plain data or a small Bubble
Tea sub-model with its own Update and View. All of them take a *styles.Theme.

# Display Components

Header (header.go) - Title, ASCII avatar and audio bar.
ProductCard (product_card.go) - One catalog product; RenderProductGrid lays out several.
MessageBubble (message.go) - A chat message with its product grid or empty state.
QuickActions (quick_actions.go) - The F1-F4 shortcut buttons.

# Interactive Components

PurchaseForm (purchase_form.go) - Modal purchase form with live total.
TypingIndicator (spinner.go) - Spinner shown while the agent thinks.
ToastManager (toast.go) - Auto-dismissing notifications.

# Usage

	theme := styles.NewTheme(styles.ModeAuto)
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetAudio(sess.Audio())
	view := header.View()
*/
package components
