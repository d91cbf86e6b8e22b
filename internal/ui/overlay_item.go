package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wareflow/internal/inventory"
)

// ItemSubmittedMsg carries a validated item draft.
type ItemSubmittedMsg struct {
	Draft inventory.Draft
}

// ItemCancelledMsg is sent when the item form is dismissed.
type ItemCancelledMsg struct{}

const (
	itemFieldSKU = iota
	itemFieldName
	itemFieldSystem
	itemFieldLocation
	itemFieldStock
	itemFieldMinStock
	itemFieldCount
)

var itemFieldLabels = [itemFieldCount]string{"SKU", "Name", "System", "Lagerort", "Bestand", "Mindestbestand"}

// ItemOverlay creates a new stock item or edits an existing one.
type ItemOverlay struct {
	id       string
	inputs   [itemFieldCount]textinput.Model
	focus    int
	errorMsg string
}

// NewItemOverlay opens the form prefilled from d. An empty draft creates.
func NewItemOverlay(d inventory.Draft) *ItemOverlay {
	m := &ItemOverlay{id: d.ID}
	values := [itemFieldCount]string{d.SKU, d.Name, d.System, d.Location, d.Stock, d.MinStock}
	for i := range m.inputs {
		m.inputs[i] = newFormInput(itemFieldLabels[i], OverlayWidthStandard-18)
		m.inputs[i].SetValue(values[i])
	}
	m.inputs[itemFieldSKU].Focus()
	return m
}

// Draft collects the current field values.
func (m *ItemOverlay) Draft() inventory.Draft {
	return inventory.Draft{
		ID:       m.id,
		SKU:      m.inputs[itemFieldSKU].Value(),
		Name:     m.inputs[itemFieldName].Value(),
		System:   m.inputs[itemFieldSystem].Value(),
		Location: m.inputs[itemFieldLocation].Value(),
		Stock:    m.inputs[itemFieldStock].Value(),
		MinStock: m.inputs[itemFieldMinStock].Value(),
	}
}

// Update handles keys while the overlay is open.
func (m *ItemOverlay) Update(msg tea.Msg) (*ItemOverlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyEsc:
			return m, func() tea.Msg { return ItemCancelledMsg{} }
		case keyMsg.Type == tea.KeyEnter && m.focus < itemFieldCount-1:
			m.setFocus(m.focus + 1)
			return m, nil
		case key.Matches(keyMsg, formSubmit):
			return m.submit()
		case key.Matches(keyMsg, formNext):
			m.setFocus(m.focus + 1)
			return m, nil
		case key.Matches(keyMsg, formPrev):
			m.setFocus(m.focus - 1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.errorMsg = ""
	return m, cmd
}

func (m *ItemOverlay) setFocus(idx int) {
	m.inputs[m.focus].Blur()
	m.focus = clampCursor(idx, itemFieldCount)
	m.inputs[m.focus].Focus()
}

func (m *ItemOverlay) submit() (*ItemOverlay, tea.Cmd) {
	d := m.Draft()
	if _, err := d.Build(); err != nil {
		m.errorMsg = errorText(err)
		return m, nil
	}
	return m, func() tea.Msg { return ItemSubmittedMsg{Draft: d} }
}

// View renders the form.
func (m *ItemOverlay) View() string {
	title := "Neuer Artikel"
	if m.id != "" {
		title = "Artikel bearbeiten"
	}
	lines := make([]string, 0, itemFieldCount+4)
	for i := range m.inputs {
		lines = append(lines, formRow(itemFieldLabels[i], m.inputs[i].View(), i == m.focus))
	}
	if m.errorMsg != "" {
		lines = append(lines, "", styleFormError().Render(m.errorMsg))
	}
	lines = append(lines, "", hintLine(
		footerHint{"^S", "Speichern"},
		footerHint{"⇥", "Nächstes Feld"},
		footerHint{"Esc", "Abbrechen"},
	))
	return renderOverlayBox(title, lines, OverlayWidthStandard+8, false)
}
