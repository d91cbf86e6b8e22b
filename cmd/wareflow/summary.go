package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"wareflow/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// ExitSummary holds data for the summary printed after the TUI exits.
type ExitSummary struct {
	Version     string
	EndStats    ui.Stats
	SessionInfo ui.SessionInfo
}

// summaryPart is one counter of the summary with its change over the session.
type summaryPart struct {
	count int
	delta int
	label string
	// good marks the direction that counts as progress.
	good int
}

// printExitSummary prints a two-line summary: orders by bucket, then stock
// and ticket counters, each with its change since startup.
func printExitSummary(w io.Writer, summary ExitSummary) {
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	versionStyle := lipgloss.NewStyle().Foreground(dimColor)
	statsStyle := lipgloss.NewStyle().Foreground(textColor)
	positiveStyle := lipgloss.NewStyle().Foreground(successColor)
	neutralStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	versionStr := ""
	if summary.Version != "" {
		versionStr = versionStyle.Render(fmt.Sprintf(" v%s", summary.Version))
	}
	sessionStr := versionStyle.Render(fmt.Sprintf(" • %s Sitzung", formatDuration(time.Since(summary.SessionInfo.StartTime))))

	start := summary.SessionInfo.InitialStats
	end := summary.EndStats

	render := func(p summaryPart) string {
		out := fmt.Sprintf("%d %s", p.count, p.label)
		if p.delta == 0 {
			return out
		}
		style := neutralStyle
		if p.good != 0 && (p.delta > 0) == (p.good > 0) {
			style = positiveStyle
		}
		return out + " " + style.Render(formatDelta(p.delta))
	}
	join := func(parts []summaryPart) string {
		var out []string
		for _, p := range parts {
			if p.count > 0 || p.delta != 0 {
				out = append(out, render(p))
			}
		}
		return strings.Join(out, ", ")
	}

	ordersStr := render(summaryPart{count: end.Orders, delta: end.Orders - start.Orders, label: "Bestellungen"})
	if breakdown := join([]summaryPart{
		{count: end.Open, delta: end.Open - start.Open, label: "offen", good: -1},
		{count: end.Late, delta: end.Late - start.Late, label: "überfällig", good: -1},
		{count: end.Completed, delta: end.Completed - start.Completed, label: "erledigt", good: 1},
	}); breakdown != "" {
		ordersStr += ": " + breakdown
	}

	stockStr := render(summaryPart{count: end.Items, delta: end.Items - start.Items, label: "Artikel"})
	if breakdown := join([]summaryPart{
		{count: end.LowStock, delta: end.LowStock - start.LowStock, label: "knapp", good: -1},
		{count: end.OutOfStock, delta: end.OutOfStock - start.OutOfStock, label: "leer", good: -1},
	}); breakdown != "" {
		stockStr += ": " + breakdown
	}
	stockStr += " • " + render(summaryPart{count: end.OpenTickets, delta: end.OpenTickets - start.OpenTickets, label: "Tickets offen", good: -1})

	_, _ = fmt.Fprintln(w, appStyle.Render("Wareflow")+versionStr+sessionStr)
	_, _ = fmt.Fprintln(w, statsStyle.Render(ordersStr))
	_, _ = fmt.Fprintln(w, statsStyle.Render(stockStr))
}

// clearLoadingScreen erases the last lines rows above the cursor.
func clearLoadingScreen(w io.Writer, lines int) {
	for i := 0; i < lines; i++ {
		_, _ = fmt.Fprint(w, "\033[A")
	}
	_, _ = fmt.Fprint(w, "\033[J")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// formatDelta formats a numeric delta with +/- prefix.
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("(+%d)", delta)
	}
	return fmt.Sprintf("(%d)", delta)
}
