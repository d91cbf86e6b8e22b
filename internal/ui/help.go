package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string
}

func helpRow(b key.Binding) []string {
	return []string{b.Help().Key, b.Help().Desc}
}

// getHelpSections returns the help content organized into sections.
// Text is derived from binding.Help() so the KeyMap stays the single source.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				helpRow(keys.Up),
				helpRow(keys.Home),
				helpRow(keys.End),
				helpRow(keys.NextTab),
				helpRow(keys.PrevTab),
				helpRow(keys.Tab1),
			},
		},
		{
			title: "GLOBAL",
			rows: [][]string{
				helpRow(keys.Enter),
				helpRow(keys.Escape),
				helpRow(keys.Search),
				helpRow(keys.Refresh),
				helpRow(keys.Copy),
				helpRow(keys.Theme),
				helpRow(keys.Quit),
			},
		},
		{
			title: "BESTELLUNGEN",
			rows: [][]string{
				helpRow(keys.Filter),
				helpRow(keys.Archived),
				helpRow(keys.Receive),
				helpRow(keys.QuickReceipt),
				helpRow(keys.Cancel),
				helpRow(keys.Archive),
				{"t", "Tickets zum Eingang"},
				helpRow(keys.Confirm),
			},
		},
		{
			title: "BESTAND",
			rows: [][]string{
				helpRow(keys.Increase),
				helpRow(keys.BulkAdd),
				helpRow(keys.BulkRemove),
				helpRow(keys.NewItem),
				helpRow(keys.EditItem),
			},
		},
		{
			title: "TICKETS",
			rows: [][]string{
				helpRow(keys.NewTicket),
				helpRow(keys.Reply),
				helpRow(keys.CloseTicket),
				helpRow(keys.Reopen),
				helpRow(keys.Send),
				helpRow(keys.SendClose),
			},
		},
	}
}

// renderHelpOverlay builds the help modal. The caller centers it.
func renderHelpOverlay(keys KeyMap) string {
	sections := getHelpSections(keys)

	leftCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[0]),
		"",
		renderHelpSectionTable(sections[1]),
	)
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[2]),
		"",
		renderHelpSectionTable(sections[3]),
		"",
		renderHelpSectionTable(sections[4]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "    ", rightCol)

	title := styleOverlayTitle().Render("✦ WAREFLOW HILFE ✦")
	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	divider := styleDivider().Render(strings.Repeat("─", dividerWidth))
	footer := styleHelpFooter().Render("? oder Esc schließt")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		"",
		columns,
		"",
		footer,
	)
	return styleOverlay().Render(content)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(14)
			}
			return styleHelpDesc()
		}).
		Rows(section.rows...)

	header := styleHelpSectionHeader().Render(section.title)
	underline := styleDivider().Render(strings.Repeat("─", len(section.title)))

	// Hidden border adds an empty top row.
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		tableStr,
	)
}
