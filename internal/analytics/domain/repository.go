package domain

import (
	"context"
	"time"
)

// CatalogRepository defines read access to item definitions
type CatalogRepository interface {
	FindAllItems() ([]Item, error)
	FindItemsNearExpiry(before time.Time) ([]Item, error)
	FindDemandItemIDs(demandName string) (map[uint]bool, error)
}

// RestockOrderRequest is one order the restock run wants opened
type RestockOrderRequest struct {
	ItemID        uint
	AmountDesired int
}

// PruneCounts reports what the retention job removed
type PruneCounts struct {
	OrdersDeleted   int64 `json:"orders_deleted"`
	BookingsDeleted int64 `json:"bookings_deleted"`
	StatsDeleted    int64 `json:"stats_deleted"`
}

// LedgerRepository defines access to bookings and orders. OpenRestockOrders
// is the only write path besides CreateEntry and must be atomic: order rows,
// booking snapshots and booking relinking commit together or not at all.
type LedgerRepository interface {
	CreateEntry(ctx context.Context, entry *LedgerEntry) error
	FindEntriesBetween(from, to time.Time) ([]LedgerEntry, error)
	FindAllOrders() ([]Order, error)
	SumOpenOrderAmounts() (map[uint]int, error)
	OpenRestockOrders(ctx context.Context, requests []RestockOrderRequest, preparedAt time.Time, usageLabel func(LedgerEntry) string) (ordersOpened int, bookingsAffected int, err error)
	PruneOlderThan(cutoff time.Time) (PruneCounts, error)
}

// StatsRepository defines access to the persisted weekly aggregates
type StatsRepository interface {
	UpsertWeeklyStats(rows []WeeklyStat) (int, error)
	FindWeeklyStats(itemID uint, since time.Time) ([]WeeklyStat, error)
}
