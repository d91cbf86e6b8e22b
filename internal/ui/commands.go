package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wareflow/internal/debug"
	"wareflow/internal/domain"
	"wareflow/internal/inventory"
	"wareflow/internal/tickets"
	"wareflow/internal/warehouse"
)

const storeTimeout = 10 * time.Second

// snapshotLoadedMsg carries a fresh copy of every collection.
type snapshotLoadedMsg struct {
	snap warehouse.Snapshot
	err  error
}

// actionDoneMsg reports the outcome of a store mutation. On success the app
// shows toast and reloads; selectTicket focuses a ticket after the reload.
type actionDoneMsg struct {
	toast        string
	selectTicket string
	err          error
}

type refreshTickMsg struct{}

func scheduleRefreshTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m *App) loadSnapshotCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		snap, err := svc.Snapshot(ctx)
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

// runAction executes fn against the service off the event loop.
func (m *App) runAction(name string, fn func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error)) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		msg, err := fn(ctx, svc)
		if err != nil {
			debug.Logf("%s failed: %v", name, err)
			return actionDoneMsg{err: err}
		}
		return msg
	}
}

func (m *App) archiveCmd(o domain.PurchaseOrder) tea.Cmd {
	return m.runAction("archive", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		if _, err := svc.ArchiveOrder(ctx, o); err != nil {
			return actionDoneMsg{}, err
		}
		return actionDoneMsg{toast: fmt.Sprintf("%s archiviert.", o.ID)}, nil
	})
}

func (m *App) cancelCmd(o domain.PurchaseOrder) tea.Cmd {
	return m.runAction("cancel", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		if _, err := svc.CancelOrder(ctx, o); err != nil {
			return actionDoneMsg{}, err
		}
		return actionDoneMsg{toast: fmt.Sprintf("%s storniert.", o.ID)}, nil
	})
}

func (m *App) quickReceiptCmd(o domain.PurchaseOrder) tea.Cmd {
	return m.runAction("quick receipt", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		_, receipt, err := svc.QuickReceipt(ctx, o)
		if err != nil {
			return actionDoneMsg{}, err
		}
		return actionDoneMsg{toast: fmt.Sprintf("Wareneingang %s vorerfasst.", receipt.ID)}, nil
	})
}

func (m *App) receiveCmd(o domain.PurchaseOrder, lines []warehouse.ReceiveLine) tea.Cmd {
	return m.runAction("receive", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		next, err := svc.ReceiveGoods(ctx, o, lines)
		if err != nil {
			return actionDoneMsg{}, err
		}
		return actionDoneMsg{toast: fmt.Sprintf("%s: %d/%d erhalten.", next.ID, next.TotalReceived(), next.TotalOrdered())}, nil
	})
}

func (m *App) adjustCmd(item domain.StockItem, amount int) tea.Cmd {
	return m.runAction("adjust", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		adj, err := svc.UpdateStockLevel(ctx, item, amount)
		if err != nil {
			return actionDoneMsg{}, err
		}
		if adj.NoOp() {
			return actionDoneMsg{toast: fmt.Sprintf("%s: Bestand unverändert (%d).", item.SKU, adj.NewLevel)}, nil
		}
		return actionDoneMsg{toast: fmt.Sprintf("%s: %d → %d", item.SKU, adj.Previous, adj.NewLevel)}, nil
	})
}

func (m *App) saveItemCmd(d inventory.Draft) tea.Cmd {
	return m.runAction("save item", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		item, err := svc.SaveItem(ctx, d)
		if err != nil {
			return actionDoneMsg{}, err
		}
		verb := "aktualisiert"
		if d.IsNew() {
			verb = "angelegt"
		}
		return actionDoneMsg{toast: fmt.Sprintf("Artikel %s %s.", item.SKU, verb)}, nil
	})
}

func (m *App) addTicketCmd(in tickets.NewTicket) tea.Cmd {
	return m.runAction("add ticket", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		t, err := svc.AddTicket(ctx, in)
		if err != nil {
			return actionDoneMsg{}, err
		}
		return actionDoneMsg{toast: fmt.Sprintf("Ticket \"%s\" erstellt.", t.Subject), selectTicket: t.ID}, nil
	})
}

func (m *App) replyCmd(t domain.Ticket, text string, closeAfter bool) tea.Cmd {
	return m.runAction("reply", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		next, err := svc.ReplyTicket(ctx, t, text, closeAfter)
		if err != nil {
			return actionDoneMsg{}, err
		}
		toast := "Antwort gesendet."
		if !next.IsOpen() {
			toast = tickets.ClosedNotice
		}
		return actionDoneMsg{toast: toast, selectTicket: next.ID}, nil
	})
}

func (m *App) reopenCmd(t domain.Ticket) tea.Cmd {
	return m.runAction("reopen", func(ctx context.Context, svc *warehouse.Service) (actionDoneMsg, error) {
		next, err := svc.ReopenTicket(ctx, t)
		if err != nil {
			return actionDoneMsg{}, err
		}
		return actionDoneMsg{toast: tickets.ReopenedNotice, selectTicket: next.ID}, nil
	})
}
