// Package weekly rolls raw ledger entries into fixed per-item week buckets.
package weekly

import (
	"sort"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/stats"
)

// WeekStart returns the Monday 00:00 of t's week, in t's location
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	// time.Weekday counts Sunday as 0
	offset := (weekday + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// LastCompletedWeek returns the start of the most recently completed
// Monday-aligned week, the default aggregation window.
func LastCompletedWeek(now time.Time) time.Time {
	return WeekStart(now).AddDate(0, 0, -7)
}

// Aggregate rolls the entries falling into [weekStart, weekStart+7d) into one
// WeeklyStat row per item. Consumption figures cover entries with an external
// usage code and a positive amount; the adjustment total sums internal-code
// entries except deliveries, which record stock receipt. Items without
// matching entries produce no row. The result is deterministic: rows are
// ordered by item id.
func Aggregate(entries []domain.LedgerEntry, weekStart, aggregatedAt time.Time) []domain.WeeklyStat {
	weekEnd := weekStart.AddDate(0, 0, 7)

	grouped := make(map[uint][]domain.LedgerEntry)
	for _, entry := range entries {
		if entry.OccurredAt.Before(weekStart) || !entry.OccurredAt.Before(weekEnd) {
			continue
		}
		grouped[entry.ItemID] = append(grouped[entry.ItemID], entry)
	}

	itemIDs := make([]uint, 0, len(grouped))
	for itemID := range grouped {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	rows := make([]domain.WeeklyStat, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		rows = append(rows, aggregateItem(itemID, grouped[itemID], weekStart, aggregatedAt))
	}
	return rows
}

func aggregateItem(itemID uint, entries []domain.LedgerEntry, weekStart, aggregatedAt time.Time) domain.WeeklyStat {
	row := domain.WeeklyStat{
		ItemID:       itemID,
		WeekStart:    weekStart,
		BookingCount: len(entries),
		AggregatedAt: aggregatedAt,
	}

	var consumptions []float64
	for _, entry := range entries {
		if entry.UsageCode >= 0 && entry.Amount > 0 {
			row.ConsumptionTotal += entry.Amount
			if entry.Amount > row.ConsumptionMax {
				row.ConsumptionMax = entry.Amount
			}
			consumptions = append(consumptions, float64(entry.Amount))
		}

		if entry.UsageCode < 0 && entry.UsageCode != domain.UsageDelivery {
			row.AdjustmentTotal += entry.Amount
		}

		abs := entry.Amount
		if abs < 0 {
			abs = -abs
		}
		if abs > row.BookingMax {
			row.BookingMax = abs
		}
	}

	row.ConsumptionStddev = stats.PopulationStddev(consumptions)
	return row
}
