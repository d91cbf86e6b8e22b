// Package store persists orders, receipts, stock and tickets. The engine
// packages never call it directly; the warehouse service does.
package store

import (
	"context"
	"fmt"
	"strings"

	"wareflow/internal/config"
	"wareflow/internal/domain"
	appErrors "wareflow/internal/errors"
)

// Store is the persistence collaborator behind the warehouse service.
type Store interface {
	Orders(ctx context.Context) ([]domain.PurchaseOrder, error)
	Receipts(ctx context.Context) ([]domain.ReceiptMaster, error)
	StockItems(ctx context.Context) ([]domain.StockItem, error)
	Tickets(ctx context.Context) ([]domain.Ticket, error)
	Movements(ctx context.Context) ([]domain.StockMovement, error)
	ItemBySKU(ctx context.Context, sku string) (domain.StockItem, error)

	SaveOrder(ctx context.Context, order domain.PurchaseOrder) error
	SaveReceipt(ctx context.Context, receipt domain.ReceiptMaster) error
	UpdateStockLevel(ctx context.Context, itemID string, level int) error
	CreateItem(ctx context.Context, item domain.StockItem) error
	UpdateItem(ctx context.Context, item domain.StockItem) error
	LogMovement(ctx context.Context, movement domain.StockMovement) error
	AddTicket(ctx context.Context, ticket domain.Ticket) error
	UpdateTicket(ctx context.Context, ticket domain.Ticket) error

	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver string
	Path   string
	DSN    string
}

// OptionsFromConfig reads the database.* keys.
func OptionsFromConfig() (Options, error) {
	opts := Options{
		Driver: strings.ToLower(strings.TrimSpace(config.GetString(config.KeyDatabaseDriver))),
		Path:   strings.TrimSpace(config.GetString(config.KeyDatabasePath)),
		DSN:    strings.TrimSpace(config.GetString(config.KeyDatabaseDSN)),
	}
	if opts.Driver == "" {
		opts.Driver = config.DriverSQLite
	}
	if opts.Driver == config.DriverSQLite && opts.Path == "" {
		path, err := config.DefaultDatabasePath()
		if err != nil {
			return Options{}, appErrors.New(appErrors.CodeConfigurationError, "resolve database path", err)
		}
		opts.Path = path
	}
	return opts, nil
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverSQLite, "":
		return OpenSQLite(ctx, opts.Path)
	case config.DriverPostgres:
		return OpenPostgres(ctx, opts.DSN)
	default:
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("unknown database driver %q", opts.Driver), nil)
	}
}

func notFound(kind, id string) error {
	return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("%s %s not found", kind, id), nil)
}

func conflict(kind, id string) error {
	return appErrors.New(appErrors.CodeConflict, fmt.Sprintf("%s %s already exists", kind, id), nil)
}

func storeFailed(op string, err error) error {
	return appErrors.New(appErrors.CodeStoreFailed, op, err)
}
