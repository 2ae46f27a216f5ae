package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/weekly"
	"github.com/lagerkern/replenish/kafka"
	"github.com/lagerkern/replenish/pkg/logger"
)

// retentionMonths is how long closed orders, folded bookings and stats rows
// are kept before the aggregation run prunes them.
const retentionMonths = 6

// AggregateWeekCommand represents the command to aggregate one week
type AggregateWeekCommand struct {
	// WeekStart is aligned down to its Monday; zero means the most recently
	// completed week.
	WeekStart time.Time
}

// AggregateWeekResult is the outcome of one aggregation run
type AggregateWeekResult struct {
	RunID        string             `json:"run_id"`
	WeekStart    time.Time          `json:"week_start"`
	RowsUpserted int                `json:"rows_upserted"`
	Pruned       domain.PruneCounts `json:"pruned"`
}

// AggregateWeekHandler handles the weekly aggregation command
type AggregateWeekHandler struct {
	ledger    domain.LedgerRepository
	stats     domain.StatsRepository
	publisher EventPublisher
}

// NewAggregateWeekHandler creates a new aggregation handler
func NewAggregateWeekHandler(ledger domain.LedgerRepository, stats domain.StatsRepository, publisher EventPublisher) *AggregateWeekHandler {
	return &AggregateWeekHandler{
		ledger:    ledger,
		stats:     stats,
		publisher: publisher,
	}
}

// Handle aggregates one calendar week of ledger entries into weekly stats.
// Re-running for the same week overwrites the stored rows, so the command is
// safe to repeat after a crash. Old data past the retention window is pruned
// on the same run.
func (h *AggregateWeekHandler) Handle(ctx context.Context, cmd AggregateWeekCommand) (*AggregateWeekResult, error) {
	now := time.Now()

	weekStart := cmd.WeekStart
	if weekStart.IsZero() {
		weekStart = weekly.LastCompletedWeek(now)
	} else {
		weekStart = weekly.WeekStart(weekStart)
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	result := &AggregateWeekResult{
		RunID:     uuid.NewString(),
		WeekStart: weekStart,
	}

	entries, err := h.ledger.FindEntriesBetween(weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger window: %w", err)
	}

	rows := weekly.Aggregate(entries, weekStart, now)
	upserted, err := h.stats.UpsertWeeklyStats(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert weekly stats: %w", err)
	}
	result.RowsUpserted = upserted

	pruned, err := h.ledger.PruneOlderThan(now.AddDate(0, -retentionMonths, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to prune old data: %w", err)
	}
	result.Pruned = pruned

	logger.Info(ctx).
		Str("run_id", result.RunID).
		Time("week_start", weekStart).
		Int("rows_upserted", upserted).
		Int64("orders_deleted", pruned.OrdersDeleted).
		Int64("bookings_deleted", pruned.BookingsDeleted).
		Int64("stats_deleted", pruned.StatsDeleted).
		Msg("Weekly aggregation completed")

	if h.publisher != nil {
		event := kafka.WeekAggregatedEvent{
			RunID:        result.RunID,
			WeekStart:    weekStart,
			RowsUpserted: upserted,
		}
		if err := h.publisher.PublishWeekAggregated(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("run_id", result.RunID).
				Msg("Failed to publish week aggregated event")
		}
	}

	return result, nil
}
