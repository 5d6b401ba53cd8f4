// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/order"
	"github.com/Lavavago/Agente/internal/ui/styles"
)

// =============================================================================
// FORM FIELDS
// =============================================================================

// FormField identifies a purchase form input. The keys match the field
// names in order.ValidationError.
type FormField int

const (
	FieldName FormField = iota
	FieldEmail
	FieldPhone
	FieldAddress
	FieldZip
	FieldQuantity
	FieldCard
	fieldCount
)

type fieldDef struct {
	key         string
	label       string
	placeholder string
	section     string
	limit       int
}

var fieldDefs = [fieldCount]fieldDef{
	FieldName:     {"name", "Nombre completo", "Ana Pérez", "Datos de contacto", 80},
	FieldEmail:    {"email", "Correo", "ana@ejemplo.com", "", 120},
	FieldPhone:    {"phone", "Teléfono", "555 123 4567", "", 20},
	FieldAddress:  {"address", "Dirección", "Calle 1 #23", "Envío", 160},
	FieldZip:      {"zip", "Código postal", "01000", "", 10},
	FieldQuantity: {"quantity", "Cantidad", "1", "Pago", 4},
	FieldCard:     {"card", "Tarjeta", "4111 1111 1111 1111", "", 23},
}

// Key returns the validation field name.
func (f FormField) Key() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldDefs[f].key
}

// =============================================================================
// FORM MESSAGES
// =============================================================================

// PurchaseSubmitMsg carries the filled-in request. It is not validated yet.
type PurchaseSubmitMsg struct {
	Request order.Request
}

// PurchaseCancelMsg closes the form without buying.
type PurchaseCancelMsg struct{}

// =============================================================================
// PURCHASE FORM
// =============================================================================

// PurchaseForm is the modal shown by /buy.
type PurchaseForm struct {
	product catalog.Product
	inputs  []textinput.Model
	focus   FormField
	errs    map[string]string
	width   int
	theme   *styles.Theme
}

// NewPurchaseForm builds the form for product with the first field focused
// and quantity 1.
func NewPurchaseForm(theme *styles.Theme, product catalog.Product) PurchaseForm {
	f := PurchaseForm{
		product: product,
		inputs:  make([]textinput.Model, fieldCount),
		errs:    make(map[string]string),
		width:   60,
		theme:   theme,
	}
	for i := range f.inputs {
		def := fieldDefs[i]
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = def.placeholder
		ti.CharLimit = def.limit
		ti.Width = 32
		f.inputs[i] = ti
	}
	f.inputs[FieldQuantity].SetValue("1")
	f.inputs[FieldName].Focus()
	return f
}

// Init starts the cursor blink.
func (f PurchaseForm) Init() tea.Cmd {
	return textinput.Blink
}

// Product returns the product being bought.
func (f PurchaseForm) Product() catalog.Product {
	return f.product
}

// Focused returns the focused field.
func (f PurchaseForm) Focused() FormField {
	return f.focus
}

// Value returns a field's text.
func (f PurchaseForm) Value(field FormField) string {
	return f.inputs[field].Value()
}

// SetValue sets a field's text.
func (f *PurchaseForm) SetValue(field FormField, v string) {
	f.inputs[field].SetValue(v)
}

// SetWidth sets the modal width.
func (f *PurchaseForm) SetWidth(w int) {
	f.width = w
	inputWidth := w - 26
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = inputWidth
	}
}

// Request builds an order request from the fields. An unparsable quantity
// becomes 0 so validation rejects it.
func (f PurchaseForm) Request() order.Request {
	qty, err := order.ParseQuantity(f.Value(FieldQuantity))
	if err != nil {
		qty = 0
	}
	return order.Request{
		Product:  f.product,
		Quantity: qty,
		Contact: order.Contact{
			Name:    strings.TrimSpace(f.Value(FieldName)),
			Email:   strings.TrimSpace(f.Value(FieldEmail)),
			Phone:   strings.TrimSpace(f.Value(FieldPhone)),
			Address: strings.TrimSpace(f.Value(FieldAddress)),
			Zip:     strings.TrimSpace(f.Value(FieldZip)),
		},
		PaymentRef: strings.TrimSpace(f.Value(FieldCard)),
	}
}

// Total returns the live total text, or a hint when the quantity is bad.
func (f PurchaseForm) Total() (string, bool) {
	qty, err := order.ParseQuantity(f.Value(FieldQuantity))
	if err != nil {
		return "Cantidad inválida", false
	}
	total, err := order.ComputeTotal(f.product, qty)
	if err != nil {
		return "Cantidad inválida", false
	}
	return catalog.FormatPrice(total), true
}

// SetErrors marks the fields named in a validation error. Any other error
// is ignored here; the caller shows it as a toast.
func (f *PurchaseForm) SetErrors(err error) {
	f.errs = make(map[string]string)
	var many order.ValidationErrors
	var one order.ValidationError
	switch {
	case errors.As(err, &many):
		for _, e := range many {
			if _, seen := f.errs[e.Field]; !seen {
				f.errs[e.Field] = fieldMessage(e)
			}
		}
	case errors.As(err, &one):
		f.errs[one.Field] = fieldMessage(one)
	}
}

// fieldMessage is the short Spanish note shown under a rejected field.
func fieldMessage(e order.ValidationError) string {
	if e.Message == "is required" {
		return "Campo obligatorio"
	}
	return "Valor inválido: " + e.Message
}

// FieldError returns the error recorded for a field, if any.
func (f PurchaseForm) FieldError(field FormField) string {
	return f.errs[field.Key()]
}

func (f *PurchaseForm) setFocus(field FormField) tea.Cmd {
	if field < 0 {
		field = fieldCount - 1
	}
	if field >= fieldCount {
		field = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = field
	return f.inputs[f.focus].Focus()
}

// Update handles navigation and editing. Enter moves to the next field and
// submits from the last one; Esc cancels.
func (f PurchaseForm) Update(msg tea.Msg) (PurchaseForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, func() tea.Msg { return PurchaseCancelMsg{} }

		case "enter":
			if f.focus == fieldCount-1 {
				req := f.Request()
				return f, func() tea.Msg { return PurchaseSubmitMsg{Request: req} }
			}
			return f, f.setFocus(f.focus + 1)

		case "tab", "down":
			return f, f.setFocus(f.focus + 1)

		case "shift+tab", "up":
			return f, f.setFocus(f.focus - 1)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRunes {
		delete(f.errs, f.focus.Key())
	}
	return f, cmd
}

// View renders the modal.
func (f PurchaseForm) View() string {
	t := f.theme
	var sb strings.Builder

	sb.WriteString(t.FormTitle.Render("Finalizar compra"))
	sb.WriteString("\n")
	sb.WriteString(t.FormProduct.Render(ProductLabel(f.product)))
	sb.WriteString("  ")
	sb.WriteString(PriceLine(t, f.product))
	sb.WriteString("\n")

	for i := range f.inputs {
		field := FormField(i)
		def := fieldDefs[i]
		if def.section != "" {
			sb.WriteString("\n")
			sb.WriteString(t.FormSection.Render(def.section))
			sb.WriteString("\n")
		}

		label := t.FormLabel.Render(def.label)
		if field == f.focus {
			label = t.FormLabelFocus.Render("> " + def.label)
		}
		sb.WriteString(label)
		sb.WriteString(f.inputs[i].View())
		sb.WriteString("\n")

		if msg := f.FieldError(field); msg != "" {
			sb.WriteString(t.FormLabel.Render(""))
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Red).Render(msg))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	total, ok := f.Total()
	if ok {
		sb.WriteString(t.FormTotal.Render("Total: " + total))
	} else {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Red).Render(total))
	}
	sb.WriteString("\n\n")
	sb.WriteString(t.FormHint.Render("Tab/flechas: cambiar campo  Enter: siguiente / confirmar  Esc: cancelar"))

	box := t.FormBox
	if f.width > 0 {
		box = box.Width(f.width)
	}
	return box.Render(sb.String())
}
