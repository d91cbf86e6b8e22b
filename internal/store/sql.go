package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	"wareflow/internal/debug"
	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

func (d dialect) String() string {
	if d == dialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// rebind rewrites ? placeholders into $n for postgres. Queries in this file
// never contain a literal question mark.
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		supplier TEXT NOT NULL DEFAULT '',
		is_archived INTEGER NOT NULL DEFAULT 0,
		is_force_closed INTEGER NOT NULL DEFAULT 0,
		linked_receipt_id TEXT NOT NULL DEFAULT '',
		date_created TEXT NOT NULL DEFAULT '',
		expected_delivery_date TEXT NOT NULL DEFAULT '',
		pdf_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		sku TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		quantity_expected INTEGER NOT NULL DEFAULT 0,
		quantity_received INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (order_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS receipts (
		id TEXT PRIMARY KEY,
		po_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		receipt_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		id TEXT NOT NULL,
		delivered_at TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (receipt_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_lines (
		receipt_id TEXT NOT NULL,
		delivery_seq INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		sku TEXT NOT NULL,
		received INTEGER NOT NULL DEFAULT 0,
		zu_viel INTEGER NOT NULL DEFAULT 0,
		damage_flag INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (receipt_id, delivery_seq, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_items (
		id TEXT PRIMARY KEY,
		sku TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		system_name TEXT NOT NULL DEFAULT '',
		stock_level INTEGER NOT NULL DEFAULT 0,
		min_stock INTEGER NOT NULL DEFAULT 0,
		warehouse_location TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL,
		item_name TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		context TEXT NOT NULL DEFAULT '',
		logged_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		receipt_id TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL,
		priority TEXT NOT NULL,
		status TEXT NOT NULL,
		opened_at BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_messages (
		ticket_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		id TEXT NOT NULL,
		author TEXT NOT NULL,
		body TEXT NOT NULL,
		sent_at BIGINT NOT NULL,
		kind TEXT NOT NULL,
		PRIMARY KEY (ticket_id, seq)
	)`,
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SQLStore keeps everything in a relational database through database/sql.
// The same queries run on SQLite and PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

var _ Store = (*SQLStore)(nil)

// OpenSQLite opens (creating if needed) the SQLite file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "sqlite database path is required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, storeFailed("create database directory", err)
	}
	db, err := sql.Open("sqlite", buildSQLiteDSN(trimmed))
	if err != nil {
		return nil, storeFailed("open sqlite db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return newSQLStore(ctx, db, dialectSQLite)
}

// OpenPostgres connects through the pgx stdlib driver.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "postgres dsn is required", nil)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, storeFailed("open postgres db", err)
	}
	return newSQLStore(ctx, db, dialectPostgres)
}

func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

func newSQLStore(ctx context.Context, db *sql.DB, d dialect) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storeFailed(fmt.Sprintf("ping %s db", d), err)
	}
	s := &SQLStore{db: db, dialect: d}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	debug.Logger().Debug("store opened", zap.Stringer("dialect", d))
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return storeFailed("migrate schema", err)
		}
	}
	return nil
}

// Close releases the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) exec(ctx context.Context, q execer, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *SQLStore) withTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeFailed(op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeFailed(op, err)
	}
	return nil
}

// Orders

func (s *SQLStore) Orders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	orders, index, err := s.loadOrderRows(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachOrderItems(ctx, orders, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *SQLStore) loadOrderRows(ctx context.Context) ([]domain.PurchaseOrder, map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, supplier, is_archived, is_force_closed, linked_receipt_id,
		       date_created, expected_delivery_date, pdf_url
		FROM orders
		ORDER BY date_created DESC, id DESC`)
	if err != nil {
		return nil, nil, storeFailed("query orders", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var orders []domain.PurchaseOrder
	index := make(map[string]int)
	for rows.Next() {
		var (
			o                 domain.PurchaseOrder
			status            string
			archived, forced  int
			created, expected string
		)
		if err := rows.Scan(&o.ID, &status, &o.Supplier, &archived, &forced, &o.LinkedReceiptID, &created, &expected, &o.PDFURL); err != nil {
			return nil, nil, storeFailed("scan order", err)
		}
		o.Status = domain.OrderStatus(status)
		o.IsArchived = archived != 0
		o.IsForceClosed = forced != 0
		o.DateCreated = parseTime(created)
		o.ExpectedDeliveryDate = parseTime(expected)
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, storeFailed("read orders", err)
	}
	return orders, index, nil
}

func (s *SQLStore) attachOrderItems(ctx context.Context, orders []domain.PurchaseOrder, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, sku, name, quantity_expected, quantity_received
		FROM order_items
		ORDER BY order_id, seq`)
	if err != nil {
		return storeFailed("query order items", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var orderID string
		var item domain.LineItem
		if err := rows.Scan(&orderID, &item.SKU, &item.Name, &item.QuantityExpected, &item.QuantityReceived); err != nil {
			return storeFailed("scan order item", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return storeFailed("read order items", err)
	}
	return nil
}

// SaveOrder inserts or replaces the order and its lines.
func (s *SQLStore) SaveOrder(ctx context.Context, o domain.PurchaseOrder) error {
	if err := o.Validate(); err != nil {
		return err
	}
	err := s.withTx(ctx, "save order", func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `
			INSERT INTO orders (id, status, supplier, is_archived, is_force_closed, linked_receipt_id,
			                    date_created, expected_delivery_date, pdf_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				status = excluded.status,
				supplier = excluded.supplier,
				is_archived = excluded.is_archived,
				is_force_closed = excluded.is_force_closed,
				linked_receipt_id = excluded.linked_receipt_id,
				date_created = excluded.date_created,
				expected_delivery_date = excluded.expected_delivery_date,
				pdf_url = excluded.pdf_url`,
			o.ID, string(o.Status), o.Supplier, boolInt(o.IsArchived), boolInt(o.IsForceClosed), o.LinkedReceiptID,
			formatTime(o.DateCreated), formatTime(o.ExpectedDeliveryDate), o.PDFURL)
		if err != nil {
			return storeFailed("upsert order", err)
		}
		if _, err := s.exec(ctx, tx, `DELETE FROM order_items WHERE order_id = ?`, o.ID); err != nil {
			return storeFailed("clear order items", err)
		}
		for i, item := range o.Items {
			_, err := s.exec(ctx, tx, `
				INSERT INTO order_items (order_id, seq, sku, name, quantity_expected, quantity_received)
				VALUES (?, ?, ?, ?, ?, ?)`,
				o.ID, i, item.SKU, item.Name, item.QuantityExpected, item.QuantityReceived)
			if err != nil {
				return storeFailed("insert order item", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	debug.Logger().Debug("order saved", zap.String("id", o.ID), zap.String("status", string(o.Status)), zap.Int("items", len(o.Items)))
	return nil
}

// Receipts

func (s *SQLStore) Receipts(ctx context.Context) ([]domain.ReceiptMaster, error) {
	receipts, index, err := s.loadReceiptRows(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachDeliveries(ctx, receipts, index); err != nil {
		return nil, err
	}
	if err := s.attachDeliveryLines(ctx, receipts, index); err != nil {
		return nil, err
	}
	return receipts, nil
}

func (s *SQLStore) loadReceiptRows(ctx context.Context) ([]domain.ReceiptMaster, map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, po_id, status FROM receipts ORDER BY id`)
	if err != nil {
		return nil, nil, storeFailed("query receipts", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var receipts []domain.ReceiptMaster
	index := make(map[string]int)
	for rows.Next() {
		var r domain.ReceiptMaster
		if err := rows.Scan(&r.ID, &r.POID, &r.Status); err != nil {
			return nil, nil, storeFailed("scan receipt", err)
		}
		index[r.ID] = len(receipts)
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, storeFailed("read receipts", err)
	}
	return receipts, index, nil
}

func (s *SQLStore) attachDeliveries(ctx context.Context, receipts []domain.ReceiptMaster, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `SELECT receipt_id, id, delivered_at FROM deliveries ORDER BY receipt_id, seq`)
	if err != nil {
		return storeFailed("query deliveries", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var receiptID, date string
		var d domain.Delivery
		if err := rows.Scan(&receiptID, &d.ID, &date); err != nil {
			return storeFailed("scan delivery", err)
		}
		d.Date = parseTime(date)
		if i, ok := index[receiptID]; ok {
			receipts[i].Deliveries = append(receipts[i].Deliveries, d)
		}
	}
	if err := rows.Err(); err != nil {
		return storeFailed("read deliveries", err)
	}
	return nil
}

func (s *SQLStore) attachDeliveryLines(ctx context.Context, receipts []domain.ReceiptMaster, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT receipt_id, delivery_seq, sku, received, zu_viel, damage_flag
		FROM delivery_lines
		ORDER BY receipt_id, delivery_seq, seq`)
	if err != nil {
		return storeFailed("query delivery lines", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var receiptID string
		var deliverySeq, damaged int
		var line domain.DeliveryLine
		if err := rows.Scan(&receiptID, &deliverySeq, &line.SKU, &line.Received, &line.ZuViel, &damaged); err != nil {
			return storeFailed("scan delivery line", err)
		}
		line.DamageFlag = damaged != 0
		i, ok := index[receiptID]
		if !ok || deliverySeq < 0 || deliverySeq >= len(receipts[i].Deliveries) {
			continue
		}
		d := &receipts[i].Deliveries[deliverySeq]
		d.Items = append(d.Items, line)
	}
	if err := rows.Err(); err != nil {
		return storeFailed("read delivery lines", err)
	}
	return nil
}

// SaveReceipt inserts or replaces the receipt with all deliveries.
func (s *SQLStore) SaveReceipt(ctx context.Context, r domain.ReceiptMaster) error {
	if strings.TrimSpace(r.ID) == "" {
		return appErrors.New(appErrors.CodeInvalidOrderData, "receipt id is required", nil)
	}
	err := s.withTx(ctx, "save receipt", func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `
			INSERT INTO receipts (id, po_id, status) VALUES (?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET po_id = excluded.po_id, status = excluded.status`,
			r.ID, r.POID, r.Status)
		if err != nil {
			return storeFailed("upsert receipt", err)
		}
		if _, err := s.exec(ctx, tx, `DELETE FROM delivery_lines WHERE receipt_id = ?`, r.ID); err != nil {
			return storeFailed("clear delivery lines", err)
		}
		if _, err := s.exec(ctx, tx, `DELETE FROM deliveries WHERE receipt_id = ?`, r.ID); err != nil {
			return storeFailed("clear deliveries", err)
		}
		for di, d := range r.Deliveries {
			_, err := s.exec(ctx, tx, `INSERT INTO deliveries (receipt_id, seq, id, delivered_at) VALUES (?, ?, ?, ?)`,
				r.ID, di, d.ID, formatTime(d.Date))
			if err != nil {
				return storeFailed("insert delivery", err)
			}
			for li, line := range d.Items {
				_, err := s.exec(ctx, tx, `
					INSERT INTO delivery_lines (receipt_id, delivery_seq, seq, sku, received, zu_viel, damage_flag)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					r.ID, di, li, line.SKU, line.Received, line.ZuViel, boolInt(line.DamageFlag))
				if err != nil {
					return storeFailed("insert delivery line", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	debug.Logger().Debug("receipt saved", zap.String("id", r.ID), zap.String("po", r.POID), zap.Int("deliveries", len(r.Deliveries)))
	return nil
}

// Stock

const stockColumns = `id, sku, name, system_name, stock_level, min_stock, warehouse_location`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStockItem(row rowScanner) (domain.StockItem, error) {
	var item domain.StockItem
	err := row.Scan(&item.ID, &item.SKU, &item.Name, &item.System, &item.StockLevel, &item.MinStock, &item.WarehouseLocation)
	return item, err
}

func (s *SQLStore) StockItems(ctx context.Context) ([]domain.StockItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+stockColumns+` FROM stock_items ORDER BY name, sku`)
	if err != nil {
		return nil, storeFailed("query stock items", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []domain.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, storeFailed("scan stock item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailed("read stock items", err)
	}
	return items, nil
}

func (s *SQLStore) ItemBySKU(ctx context.Context, sku string) (domain.StockItem, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+stockColumns+` FROM stock_items WHERE sku = ?`), sku)
	item, err := scanStockItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StockItem{}, notFound("item", sku)
	}
	if err != nil {
		return domain.StockItem{}, storeFailed("load item", err)
	}
	return item, nil
}

func (s *SQLStore) UpdateStockLevel(ctx context.Context, itemID string, level int) error {
	if level < 0 {
		return appErrors.New(appErrors.CodeInvalidQuantity, "stock level must not be negative", nil)
	}
	res, err := s.exec(ctx, s.db, `UPDATE stock_items SET stock_level = ? WHERE id = ?`, level, itemID)
	if err != nil {
		return storeFailed("update stock level", err)
	}
	if err := requireRow(res, "item", itemID); err != nil {
		return err
	}
	debug.Logger().Debug("stock level updated", zap.String("item", itemID), zap.Int("level", level))
	return nil
}

func (s *SQLStore) CreateItem(ctx context.Context, item domain.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	_, err := s.exec(ctx, s.db, `INSERT INTO stock_items (`+stockColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.SKU, item.Name, item.System, item.StockLevel, item.MinStock, item.WarehouseLocation)
	if isUniqueViolation(err) {
		return conflict("item", item.SKU)
	}
	if err != nil {
		return storeFailed("create item", err)
	}
	debug.Logger().Debug("item created", zap.String("id", item.ID), zap.String("sku", item.SKU))
	return nil
}

func (s *SQLStore) UpdateItem(ctx context.Context, item domain.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	res, err := s.exec(ctx, s.db, `
		UPDATE stock_items
		SET sku = ?, name = ?, system_name = ?, stock_level = ?, min_stock = ?, warehouse_location = ?
		WHERE id = ?`,
		item.SKU, item.Name, item.System, item.StockLevel, item.MinStock, item.WarehouseLocation, item.ID)
	if isUniqueViolation(err) {
		return conflict("item", item.SKU)
	}
	if err != nil {
		return storeFailed("update item", err)
	}
	return requireRow(res, "item", item.ID)
}

// Movements

func (s *SQLStore) LogMovement(ctx context.Context, m domain.StockMovement) error {
	_, err := s.exec(ctx, s.db, `
		INSERT INTO stock_movements (id, item_id, item_name, action, quantity, source, context, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ItemID, m.ItemName, string(m.Action), m.Quantity, m.Source, string(m.Context), formatTime(m.Timestamp))
	if isUniqueViolation(err) {
		return conflict("movement", m.ID)
	}
	if err != nil {
		return storeFailed("log movement", err)
	}
	debug.Logger().Debug("movement logged",
		zap.String("item", m.ItemID),
		zap.String("action", string(m.Action)),
		zap.Int("quantity", m.Quantity),
		zap.String("context", string(m.Context)))
	return nil
}

// Movements returns the audit log, newest first.
func (s *SQLStore) Movements(ctx context.Context) ([]domain.StockMovement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, item_id, item_name, action, quantity, source, context, logged_at
		FROM stock_movements
		ORDER BY logged_at DESC, id DESC`)
	if err != nil {
		return nil, storeFailed("query movements", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		var action, movementCtx, logged string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.ItemName, &action, &m.Quantity, &m.Source, &movementCtx, &logged); err != nil {
			return nil, storeFailed("scan movement", err)
		}
		m.Action = domain.MovementAction(action)
		m.Context = domain.MovementContext(movementCtx)
		m.Timestamp = parseTime(logged)
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailed("read movements", err)
	}
	return movements, nil
}

// Tickets

func (s *SQLStore) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, index, err := s.loadTicketRows(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachMessages(ctx, tickets, index); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *SQLStore) loadTicketRows(ctx context.Context) ([]domain.Ticket, map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, receipt_id, subject, priority, status
		FROM tickets
		ORDER BY opened_at DESC, id`)
	if err != nil {
		return nil, nil, storeFailed("query tickets", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var tickets []domain.Ticket
	index := make(map[string]int)
	for rows.Next() {
		var t domain.Ticket
		var priority, status string
		if err := rows.Scan(&t.ID, &t.ReceiptID, &t.Subject, &priority, &status); err != nil {
			return nil, nil, storeFailed("scan ticket", err)
		}
		t.Priority = domain.TicketPriority(priority)
		t.Status = domain.TicketStatus(status)
		index[t.ID] = len(tickets)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, storeFailed("read tickets", err)
	}
	return tickets, index, nil
}

func (s *SQLStore) attachMessages(ctx context.Context, tickets []domain.Ticket, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ticket_id, id, author, body, sent_at, kind
		FROM ticket_messages
		ORDER BY ticket_id, seq`)
	if err != nil {
		return storeFailed("query ticket messages", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var ticketID, kind string
		var msg domain.TicketMessage
		if err := rows.Scan(&ticketID, &msg.ID, &msg.Author, &msg.Text, &msg.Timestamp, &kind); err != nil {
			return storeFailed("scan ticket message", err)
		}
		msg.Type = domain.MessageType(kind)
		if i, ok := index[ticketID]; ok {
			tickets[i].Messages = append(tickets[i].Messages, msg)
		}
	}
	if err := rows.Err(); err != nil {
		return storeFailed("read ticket messages", err)
	}
	return nil
}

func (s *SQLStore) AddTicket(ctx context.Context, t domain.Ticket) error {
	err := s.withTx(ctx, "add ticket", func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `
			INSERT INTO tickets (id, receipt_id, subject, priority, status, opened_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.ReceiptID, t.Subject, string(t.Priority), string(t.Status), openedAt(t))
		if isUniqueViolation(err) {
			return conflict("ticket", t.ID)
		}
		if err != nil {
			return storeFailed("insert ticket", err)
		}
		return s.insertMessages(ctx, tx, t)
	})
	if err != nil {
		return err
	}
	debug.Logger().Debug("ticket added", zap.String("id", t.ID), zap.String("receipt", t.ReceiptID))
	return nil
}

// UpdateTicket replaces the ticket's status and message log.
func (s *SQLStore) UpdateTicket(ctx context.Context, t domain.Ticket) error {
	err := s.withTx(ctx, "update ticket", func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, `
			UPDATE tickets SET receipt_id = ?, subject = ?, priority = ?, status = ?, opened_at = ?
			WHERE id = ?`,
			t.ReceiptID, t.Subject, string(t.Priority), string(t.Status), openedAt(t), t.ID)
		if err != nil {
			return storeFailed("update ticket", err)
		}
		if err := requireRow(res, "ticket", t.ID); err != nil {
			return err
		}
		if _, err := s.exec(ctx, tx, `DELETE FROM ticket_messages WHERE ticket_id = ?`, t.ID); err != nil {
			return storeFailed("clear ticket messages", err)
		}
		return s.insertMessages(ctx, tx, t)
	})
	if err != nil {
		return err
	}
	debug.Logger().Debug("ticket updated", zap.String("id", t.ID), zap.String("status", string(t.Status)), zap.Int("messages", len(t.Messages)))
	return nil
}

func (s *SQLStore) insertMessages(ctx context.Context, tx *sql.Tx, t domain.Ticket) error {
	for i, msg := range t.Messages {
		_, err := s.exec(ctx, tx, `
			INSERT INTO ticket_messages (ticket_id, seq, id, author, body, sent_at, kind)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, i, msg.ID, msg.Author, msg.Text, msg.Timestamp, string(msg.Type))
		if err != nil {
			return storeFailed("insert ticket message", err)
		}
	}
	return nil
}

func openedAt(t domain.Ticket) int64 {
	if len(t.Messages) == 0 {
		return 0
	}
	return t.Messages[0].Timestamp
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeFailed("rows affected", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			debug.Logf("store: unparseable timestamp %q: %v", raw, err)
			return time.Time{}
		}
	}
	return t.Local()
}
