package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts for the application.
// Each binding includes the actual keys and help text for display.
// Related bindings (Up/Down, Increase/Decrease) share identical help text
// since they appear as a single row in the help overlay.
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	Home    key.Binding
	End     key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding

	// Global
	Enter   key.Binding
	Escape  key.Binding
	Search  key.Binding
	Refresh key.Binding
	Copy    key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding

	// Orders
	Filter       key.Binding
	Archived     key.Binding
	Receive      key.Binding
	QuickReceipt key.Binding
	Cancel       key.Binding
	Archive      key.Binding
	Confirm      key.Binding
	Deny         key.Binding

	// Inventory
	Increase   key.Binding
	Decrease   key.Binding
	BulkAdd    key.Binding
	BulkRemove key.Binding
	NewItem    key.Binding
	EditItem   key.Binding

	// Tickets
	NewTicket   key.Binding
	Reply       key.Binding
	CloseTicket key.Binding
	Reopen      key.Binding
	Send        key.Binding
	SendClose   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓  j/k", "Hoch/runter"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓  j/k", "Hoch/runter"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home  g", "Zum Anfang"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End   G", "Zum Ende"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥ (Tab)", "Nächste Ansicht"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧⇥", "Vorige Ansicht"),
		),
		Tab1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1-4", "Ansicht wählen")),
		Tab2: key.NewBinding(key.WithKeys("2"), key.WithHelp("1-4", "Ansicht wählen")),
		Tab3: key.NewBinding(key.WithKeys("3"), key.WithHelp("1-4", "Ansicht wählen")),
		Tab4: key.NewBinding(key.WithKeys("4"), key.WithHelp("1-4", "Ansicht wählen")),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎ (Enter)", "Detail öffnen"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Schließen/abbrechen"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Suchen"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "Neu laden"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "ID kopieren"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Theme wechseln"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Hilfe"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Beenden"),
		),

		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Nächster Filter"),
		),
		Archived: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Archivierte ein/aus"),
		),
		Receive: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Wareneingang buchen"),
		),
		QuickReceipt: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Eingang vorerfassen"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Stornieren"),
		),
		Archive: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Archivieren"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Bestätigen"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "Zurück"),
		),

		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("[n]+/-", "Bestand ändern"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("[n]+/-", "Bestand ändern"),
		),
		BulkAdd: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Menge hinzufügen"),
		),
		BulkRemove: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Menge entnehmen"),
		),
		NewItem: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Neuer Artikel"),
		),
		EditItem: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Artikel bearbeiten"),
		),

		NewTicket: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Neues Ticket"),
		),
		Reply: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Antworten"),
		),
		CloseTicket: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Ticket schließen"),
		),
		Reopen: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Wieder öffnen"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "Senden"),
		),
		SendClose: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+D", "Senden und schließen"),
		),
	}
}
