package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wareflow/internal/domain"
	"wareflow/internal/inventory"
	"wareflow/internal/warehouse"
)

// ReceiveSubmittedMsg is sent when the receive-goods form is confirmed.
type ReceiveSubmittedMsg struct {
	OrderID string
	Lines   []warehouse.ReceiveLine
}

// ReceiveCancelledMsg is sent when the form is dismissed.
type ReceiveCancelledMsg struct{}

type receiveRow struct {
	item    domain.LineItem
	input   textinput.Model
	damaged bool
}

// ReceiveOverlay books a delivery line by line. Open quantities are prefilled.
type ReceiveOverlay struct {
	orderID  string
	rows     []receiveRow
	focus    int
	errorMsg string
}

var (
	receiveToggleDamage = key.NewBinding(key.WithKeys("ctrl+t"))
	formNext            = key.NewBinding(key.WithKeys("tab", "down"))
	formPrev            = key.NewBinding(key.WithKeys("shift+tab", "up"))
	formSubmit          = key.NewBinding(key.WithKeys("enter", "ctrl+s"))
)

// NewReceiveOverlay prepares the form for every line of o.
func NewReceiveOverlay(o domain.PurchaseOrder) *ReceiveOverlay {
	m := &ReceiveOverlay{orderID: o.ID}
	for _, item := range o.Items {
		open := item.QuantityExpected - item.QuantityReceived
		if open < 0 {
			open = 0
		}
		in := newFormInput("0", 8)
		in.SetValue(strconv.Itoa(open))
		m.rows = append(m.rows, receiveRow{item: item, input: in})
	}
	if len(m.rows) > 0 {
		m.rows[0].input.Focus()
	}
	return m
}

// Update handles keys while the overlay is open.
func (m *ReceiveOverlay) Update(msg tea.Msg) (*ReceiveOverlay, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case keyMsg.Type == tea.KeyEsc:
		return m, func() tea.Msg { return ReceiveCancelledMsg{} }
	case key.Matches(keyMsg, formSubmit):
		return m.submit()
	case key.Matches(keyMsg, formNext):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(keyMsg, formPrev):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(keyMsg, receiveToggleDamage):
		if len(m.rows) > 0 {
			m.rows[m.focus].damaged = !m.rows[m.focus].damaged
		}
		return m, nil
	}
	if len(m.rows) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.rows[m.focus].input, cmd = m.rows[m.focus].input.Update(msg)
	m.errorMsg = ""
	return m, cmd
}

func (m *ReceiveOverlay) setFocus(idx int) {
	if len(m.rows) == 0 {
		return
	}
	m.rows[m.focus].input.Blur()
	m.focus = clampCursor(idx, len(m.rows))
	m.rows[m.focus].input.Focus()
}

// Lines parses the form. Blank and zero quantities are skipped.
func (m *ReceiveOverlay) Lines() ([]warehouse.ReceiveLine, error) {
	lines := make([]warehouse.ReceiveLine, 0, len(m.rows))
	for _, row := range m.rows {
		raw := strings.TrimSpace(row.input.Value())
		if raw == "" || raw == "0" {
			continue
		}
		n, ok := inventory.ParseBulkQuantity(raw)
		if !ok {
			return nil, fmt.Errorf("ungültige Menge für %s: %q", row.item.SKU, raw)
		}
		lines = append(lines, warehouse.ReceiveLine{SKU: row.item.SKU, Quantity: n, Damaged: row.damaged})
	}
	if len(lines) == 0 {
		return nil, errors.New("keine Menge erfasst")
	}
	return lines, nil
}

func (m *ReceiveOverlay) submit() (*ReceiveOverlay, tea.Cmd) {
	lines, err := m.Lines()
	if err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	orderID := m.orderID
	return m, func() tea.Msg { return ReceiveSubmittedMsg{OrderID: orderID, Lines: lines} }
}

// View renders the form.
func (m *ReceiveOverlay) View() string {
	lines := []string{styleDim().Render("Menge je Position (offen vorbelegt)"), ""}
	for i, row := range m.rows {
		damage := styleDim().Render("[ ] Schaden")
		if row.damaged {
			damage = styleFormError().Render("[x] Schaden")
		}
		label := truncate(row.item.SKU, 12)
		value := fmt.Sprintf("%s %s  %s",
			padRight(row.input.View(), 9),
			styleDim().Render(fmt.Sprintf("%d/%d", row.item.QuantityReceived, row.item.QuantityExpected)),
			damage)
		lines = append(lines, formRow(label, value, i == m.focus))
	}
	if m.errorMsg != "" {
		lines = append(lines, "", styleFormError().Render(m.errorMsg))
	}
	lines = append(lines, "", hintLine(
		footerHint{"⏎", "Buchen"},
		footerHint{"^T", "Schaden"},
		footerHint{"⇥", "Nächste"},
		footerHint{"Esc", "Abbrechen"},
	))
	return renderOverlayBox("Wareneingang buchen · "+m.orderID, lines, OverlayWidthWide, false)
}
