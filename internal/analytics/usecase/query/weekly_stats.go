package query

import (
	"fmt"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/weekly"
)

// defaultWeeks is how far back the weekly stats query reaches when the
// caller does not say.
const defaultWeeks = 12

// WeeklyStatsQuery selects the stored aggregates for one item
type WeeklyStatsQuery struct {
	ItemID uint
	// Weeks limits how many weeks back from now to return; 0 means 12
	Weeks int
}

// WeeklyStatsHandler handles reads of the persisted weekly aggregates
type WeeklyStatsHandler struct {
	stats domain.StatsRepository
}

// NewWeeklyStatsHandler creates a new weekly stats handler
func NewWeeklyStatsHandler(stats domain.StatsRepository) *WeeklyStatsHandler {
	return &WeeklyStatsHandler{stats: stats}
}

// Handle returns the stored weekly rows for the item, most recent window first
func (h *WeeklyStatsHandler) Handle(query WeeklyStatsQuery) ([]domain.WeeklyStat, error) {
	if query.ItemID == 0 {
		return nil, fmt.Errorf("item_id is required")
	}

	weeks := query.Weeks
	if weeks <= 0 {
		weeks = defaultWeeks
	}

	since := weekly.WeekStart(time.Now()).AddDate(0, 0, -7*weeks)
	rows, err := h.stats.FindWeeklyStats(query.ItemID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly stats: %w", err)
	}
	return rows, nil
}
