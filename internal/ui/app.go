package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"wareflow/internal/config"
	"wareflow/internal/debug"
	"wareflow/internal/domain"
	"wareflow/internal/inventory"
	"wareflow/internal/orders"
	"wareflow/internal/ui/theme"
	"wareflow/internal/warehouse"
)

const (
	minContentWidth  = 40
	minContentHeight = 8
	threadPaneRatio  = 0.62
)

var (
	clipboardWriteAll = clipboard.WriteAll
	saveTheme         = config.SaveTheme
)

// Config configures the UI application.
type Config struct {
	Service         *warehouse.Service
	OutputFormat    string
	Version         string
	ShowArchived    bool
	RefreshInterval time.Duration
	StartupReporter StartupReporter
}

// App implements the Bubble Tea model for wareflow.
type App struct {
	svc   *warehouse.Service
	keys  KeyMap
	snap  warehouse.Snapshot
	index orders.ReceiptIndex

	tab           Tab
	orderView     OrderViewState
	inventoryView InventoryViewState
	ticketView    TicketViewState
	inspector     InspectorViewState

	searchInput   textinput.Model
	searching     bool
	bulkInput     textinput.Model
	replyBox      textarea.Model
	thread        viewport.Model
	threadKey     string
	progress      progress.Model
	spinner       spinner.Model
	loading       bool
	pendingTicket string

	activeOverlay  OverlayType
	receiveOverlay *ReceiveOverlay
	itemOverlay    *ItemOverlay
	ticketOverlay  *TicketOverlay
	showHelp       bool

	toast toast

	width           int
	height          int
	ready           bool
	outputFormat    string
	version         string
	refreshInterval time.Duration
	session         SessionInfo
}

// NewApp loads the first snapshot and builds the model.
func NewApp(cfg Config) (*App, error) {
	if cfg.Service == nil {
		return nil, errors.New("ui: service is required")
	}
	reporter := cfg.StartupReporter
	if reporter != nil {
		reporter.Stage(StartupStageLoadingData, "Loading orders, stock and tickets...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	snap, err := cfg.Service.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}

	search := textinput.New()
	search.Placeholder = "ID, Lieferant, SKU..."
	search.Prompt = "/"

	bulk := newFormInput("z.B. 12", 12)

	reply := newFormTextarea("Antwort schreiben...", 60, 3)

	app := &App{
		svc:             cfg.Service,
		keys:            DefaultKeyMap(),
		orderView:       OrderViewState{Filter: orders.FilterAll, ShowArchived: cfg.ShowArchived},
		searchInput:     search,
		bulkInput:       bulk,
		replyBox:        reply,
		thread:          viewport.New(60, 10),
		progress:        progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		spinner:         spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		outputFormat:    cfg.OutputFormat,
		version:         cfg.Version,
		refreshInterval: cfg.RefreshInterval,
	}
	app.applySnapshot(snap)
	app.session = SessionInfo{StartTime: timeNow(), InitialStats: app.Stats()}
	debug.Logf("ui ready: %d orders, %d items, %d tickets", len(snap.Orders), len(snap.Items), len(snap.Tickets))
	if reporter != nil {
		reporter.Stage(StartupStageReady, "Ready!")
	}
	return app, nil
}

func (m *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.refreshInterval > 0 {
		cmds = append(cmds, scheduleRefreshTick(m.refreshInterval))
	}
	return tea.Batch(cmds...)
}

func (m *App) today() time.Time {
	if m.svc == nil {
		return timeNow()
	}
	return m.svc.Now()
}

// applySnapshot swaps in fresh data and repairs every cursor.
func (m *App) applySnapshot(snap warehouse.Snapshot) {
	m.snap = snap
	m.index = orders.NewReceiptIndex(snap.Receipts)

	m.orderView = m.orderView.Move(0, len(m.visibleOrders()))
	m.inventoryView.Cursor = clampCursor(m.inventoryView.Cursor, len(m.visibleItems()))
	m.inspector = m.inspector.Move(0, len(m.inspectorOrders()))

	if m.pendingTicket != "" {
		m.ticketView = m.ticketView.Select(m.pendingTicket)
		m.pendingTicket = ""
	}
	m.ticketView = m.ticketView.EnsureSelection(snap.Tickets)
	m.syncThread()
}

// Orders

func (m *App) visibleOrders() []domain.PurchaseOrder {
	return orders.Apply(m.snap.Orders, m.orderView.Query(m.today()))
}

func (m *App) orderCounts() orders.Counts {
	return orders.Count(m.snap.Orders, m.orderView.Query(m.today()))
}

func (m *App) currentOrder() (domain.PurchaseOrder, bool) {
	list := m.visibleOrders()
	if len(list) == 0 {
		return domain.PurchaseOrder{}, false
	}
	return list[clampCursor(m.orderView.Cursor, len(list))], true
}

func (m *App) orderByID(id string) (domain.PurchaseOrder, bool) {
	for _, o := range m.snap.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.PurchaseOrder{}, false
}

func (m *App) detailOrder() (domain.PurchaseOrder, bool) {
	if m.orderView.DetailID == "" {
		return domain.PurchaseOrder{}, false
	}
	return m.orderByID(m.orderView.DetailID)
}

// receiptIDFor names the receipt tickets of o attach to: the synced receipt
// or the weak reference on the order.
func (m *App) receiptIDFor(o domain.PurchaseOrder) string {
	if r, ok := m.index.Resolve(o).Linked(); ok {
		return r.ID
	}
	return o.LinkedReceiptID
}

// inspectorOrders lists every order, archived included, in list order.
func (m *App) inspectorOrders() []domain.PurchaseOrder {
	return orders.Apply(m.snap.Orders, orders.Query{ShowArchived: true, Filter: orders.FilterAll, Today: m.today()})
}

// Inventory

func (m *App) visibleItems() []domain.StockItem {
	return inventory.Search(m.snap.Items, m.inventoryView.Search)
}

func (m *App) currentItem() (domain.StockItem, bool) {
	list := m.visibleItems()
	if len(list) == 0 {
		return domain.StockItem{}, false
	}
	return list[clampCursor(m.inventoryView.Cursor, len(list))], true
}

// Tickets

func (m *App) visibleTickets() []domain.Ticket {
	return m.ticketView.Visible(m.snap.Tickets)
}

func (m *App) selectedTicket() (domain.Ticket, bool) {
	for _, t := range m.snap.Tickets {
		if t.ID == m.ticketView.SelectedID {
			return t, true
		}
	}
	return domain.Ticket{}, false
}

// syncThread renders the selected ticket into the thread viewport and jumps
// to the newest message whenever the thread changed.
func (m *App) syncThread() {
	t, ok := m.selectedTicket()
	if !ok {
		m.thread.SetContent(styleDim().Render("Kein Ticket ausgewählt."))
		m.threadKey = ""
		return
	}
	threadKey := fmt.Sprintf("%s/%d/%d", t.ID, len(t.Messages), m.thread.Width)
	if threadKey == m.threadKey {
		return
	}
	m.threadKey = threadKey
	m.thread.SetContent(m.renderThread(t, m.thread.Width))
	m.thread.GotoBottom()
}

// resize recomputes component sizes from the terminal dimensions.
func (m *App) resize() {
	contentWidth := m.width - 4
	if contentWidth < minContentWidth {
		contentWidth = minContentWidth
	}
	contentHeight := m.height - 4
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	threadWidth := int(float64(contentWidth) * threadPaneRatio)
	m.thread.Width = threadWidth - 2
	m.thread.Height = contentHeight - 8
	if m.thread.Height < 3 {
		m.thread.Height = 3
	}
	m.replyBox.SetWidth(threadWidth - 2)
	m.searchInput.Width = contentWidth - 4
	m.progress.Width = OverlayWidthWide - 24
	m.threadKey = ""
	m.syncThread()
}

func (m *App) copyToClipboard(label, value string) tea.Cmd {
	if value == "" {
		return nil
	}
	if err := clipboardWriteAll(value); err != nil {
		return m.showError(fmt.Errorf("zwischenablage: %w", err))
	}
	return m.showSuccess(fmt.Sprintf("%s '%s' kopiert.", label, value))
}

func (m *App) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	m.threadKey = ""
	m.syncThread()
	if err := saveTheme(name); err != nil {
		debug.Logf("save theme %s: %v", name, err)
	}
	return m.showSuccess("Theme: " + name)
}
