package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wareflow/internal/domain"
	"wareflow/internal/orders"
)

var lifecycleSteps = []orders.Lifecycle{orders.LifecycleOpen, orders.LifecyclePartial, orders.LifecycleCompleted}

// renderOrderDetail renders the order detail overlay.
func (m *App) renderOrderDetail(o domain.PurchaseOrder) string {
	link := m.index.Resolve(o)
	today := m.today()

	due := formatDate(o.ExpectedDeliveryDate)
	if orders.IsLate(o, today) {
		due += " " + styleBadge(orders.ToneDanger).Render("überfällig")
	}

	lines := []string{
		renderBadges(orders.PrimaryBadges(o, link)),
		"",
		formRow("Lieferant", o.Supplier, false),
		formRow("Status", string(o.Status)+styleDim().Render(" (gespeichert)"), false),
		formRow("Erstellt", formatDate(o.DateCreated), false),
		formRow("Liefertermin", due, false),
		formRow("Wareneingang", describeLink(o, link), false),
	}
	if o.PDFURL != "" {
		lines = append(lines, formRow("Beleg", truncate(o.PDFURL, 40), false))
	}
	lines = append(lines,
		"",
		m.renderStepper(o),
		m.progress.ViewAs(orders.Progress(o))+styleDim().Render(fmt.Sprintf("  %d/%d", o.TotalReceived(), o.TotalOrdered())),
		"",
		m.renderLineTable(o),
		"",
		m.detailHints(o),
	)
	return renderOverlayBox("Bestellung "+o.ID, lines, OverlayWidthWide+12, false)
}

func describeLink(o domain.PurchaseOrder, link orders.ReceiptLink) string {
	switch link.State {
	case orders.LinkLinked:
		r := link.Receipt
		status := r.Status
		if status == "" {
			status = "-"
		}
		return fmt.Sprintf("%s · %s · %d Lieferung(en)", r.ID, status, len(r.Deliveries))
	case orders.LinkPending:
		return o.LinkedReceiptID + styleDim().Render(" (noch nicht synchronisiert)")
	default:
		return "-"
	}
}

// renderStepper shows the lifecycle as a three step track. Cancelled orders
// leave the track.
func (m *App) renderStepper(o domain.PurchaseOrder) string {
	visual := orders.VisualStatus(o)
	var track string
	if visual == orders.LifecycleCancelled {
		track = styleBadge(orders.ToneDanger).Render("✕ " + string(orders.LifecycleCancelled))
	} else {
		current := 0
		for i, step := range lifecycleSteps {
			if step == visual {
				current = i
			}
		}
		parts := make([]string, 0, len(lifecycleSteps))
		for i, step := range lifecycleSteps {
			switch {
			case i < current:
				parts = append(parts, styleBadge(orders.ToneSuccess).Render("● "+string(step)))
			case i == current:
				parts = append(parts, styleBadge(orders.ToneInfo).Render("◉ "+string(step)))
			default:
				parts = append(parts, styleDim().Render("○ "+string(step)))
			}
		}
		track = strings.Join(parts, styleDim().Render(" ── "))
	}
	if orders.HasOpenTickets(o, m.snap.Tickets) {
		track += "  " + styleBadge(orders.ToneWarning).Render("⚑ offene Tickets")
	}
	return track
}

func (m *App) renderLineTable(o domain.PurchaseOrder) string {
	views := orders.LineViews(o, orders.LookupFromItems(m.snap.Items))
	if len(views) == 0 {
		return styleDim().Render("Keine Positionen.")
	}
	tones := make([]orders.Tone, 0, len(views))
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		note, tone := lineNote(v)
		tones = append(tones, tone)
		rows = append(rows, []string{
			v.Item.SKU,
			truncate(v.Item.Name, 20),
			v.System,
			fmt.Sprintf("%d/%d", v.Item.QuantityReceived, v.Item.QuantityExpected),
			fmt.Sprintf("%d", v.Open),
			note,
		})
	}
	return renderTable(
		[]string{"SKU", "Artikel", "System", "Menge", "Offen", ""},
		rows, 0,
		func(row, col int) lipgloss.Style {
			if col == 5 && row < len(tones) {
				return styleBadge(tones[row])
			}
			return styleText()
		},
	)
}

func lineNote(v orders.LineView) (string, orders.Tone) {
	switch {
	case v.Voided:
		return "abgeschrieben", orders.ToneMuted
	case v.Over:
		return fmt.Sprintf("+%d zu viel", v.Item.QuantityReceived-v.Item.QuantityExpected), orders.ToneWarning
	case v.Perfect:
		return "✓", orders.ToneSuccess
	default:
		return "offen", orders.ToneInfo
	}
}

// detailHints lists only the actions the order currently allows.
func (m *App) detailHints(o domain.PurchaseOrder) string {
	hints := make([]footerHint, 0, 7)
	if orders.CanReceive(o) {
		hints = append(hints, footerHint{"w", "Eingang buchen"})
	}
	if orders.CanQuickReceipt(o) {
		hints = append(hints, footerHint{"v", "Vorerfassen"})
	}
	if orders.CanCancel(o) {
		hints = append(hints, footerHint{"x", "Stornieren"})
	}
	if orders.CanArchive(o) {
		hints = append(hints, footerHint{"A", "Archivieren"})
	}
	if m.receiptIDFor(o) != "" {
		hints = append(hints, footerHint{"t", "Tickets"}, footerHint{"n", "Neues Ticket"})
	}
	hints = append(hints, footerHint{"Esc", "Zurück"})
	return hintLine(hints...)
}

// renderConfirm asks before a quick receipt, a cancellation or archiving.
func (m *App) renderConfirm(o domain.PurchaseOrder, kind ConfirmKind) string {
	var title, text string
	danger := false
	switch kind {
	case ConfirmQuickReceipt:
		title = "Wareneingang vorerfassen?"
		text = fmt.Sprintf("Für %s wird ein Wareneingang mit Status \"%s\" angelegt. Es wird keine Ware gebucht.", o.ID, domain.ReceiptStatusAwaitingCheck)
	case ConfirmCancel:
		title = "Bestellung stornieren?"
		text = fmt.Sprintf("%s wird storniert. Das lässt sich nicht rückgängig machen.", o.ID)
		danger = true
	case ConfirmArchive:
		title = "Bestellung archivieren?"
		text = fmt.Sprintf("%s verschwindet aus der Liste. Über Archivierte bleibt sie sichtbar.", o.ID)
	}
	lines := []string{
		wrapIndented(text, OverlayWidthStandard-2*overlayHPadding, 0),
		"",
		hintLine(footerHint{"y", "Ja"}, footerHint{"n", "Nein"}),
	}
	return renderOverlayBox(title, lines, OverlayWidthStandard, danger)
}
