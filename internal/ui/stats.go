package ui

import (
	"time"

	"wareflow/internal/inventory"
	"wareflow/internal/orders"
	"wareflow/internal/warehouse"
)

// Stats is the headline count set shown in the header and the exit summary.
// Order counts exclude archived orders.
type Stats struct {
	Orders      int
	Open        int
	Late        int
	Completed   int
	Items       int
	LowStock    int
	OutOfStock  int
	OpenTickets int
}

// SessionInfo captures the state at startup for the exit summary.
type SessionInfo struct {
	StartTime    time.Time
	InitialStats Stats
}

// ComputeStats derives Stats from a snapshot as of today.
func ComputeStats(snap warehouse.Snapshot, today time.Time) Stats {
	counts := orders.Count(snap.Orders, orders.Query{Filter: orders.FilterAll, Today: today})
	summary := inventory.Summarize(snap.Items)
	stats := Stats{
		Orders:     counts.All,
		Open:       counts.Open,
		Late:       counts.Late,
		Completed:  counts.Completed,
		Items:      summary.Total,
		LowStock:   summary.LowStock,
		OutOfStock: summary.OutOfStock,
	}
	for _, t := range snap.Tickets {
		if t.IsOpen() {
			stats.OpenTickets++
		}
	}
	return stats
}

// Stats returns the counts for the currently loaded snapshot.
func (m *App) Stats() Stats {
	return ComputeStats(m.snap, m.today())
}

// SessionInfo returns the startup state recorded by NewApp.
func (m *App) SessionInfo() SessionInfo {
	return m.session
}
