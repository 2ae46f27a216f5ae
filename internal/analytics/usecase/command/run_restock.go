package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/restock"
	"github.com/lagerkern/replenish/kafka"
	"github.com/lagerkern/replenish/pkg/logger"
)

// EventPublisher publishes analytics events; nil-able when Kafka is disabled
type EventPublisher interface {
	PublishOrderPrepared(ctx context.Context, event kafka.OrderPreparedEvent) error
	PublishWeekAggregated(ctx context.Context, event kafka.WeekAggregatedEvent) error
}

// maxAttempts bounds the retries on transient store errors
const maxAttempts = 3

// RunRestockCommand represents the command to run a restock batch
type RunRestockCommand struct {
	// PreparedAt stamps the run; zero means now. Only bookings up to this
	// point are folded into the created orders.
	PreparedAt time.Time
}

// RunRestockResult is the outcome of a restock run
type RunRestockResult struct {
	RunID            string         `json:"run_id"`
	Lines            []restock.Line `json:"lines"`
	OrdersOpened     int            `json:"orders_opened"`
	BookingsAffected int            `json:"bookings_affected"`
}

// RunRestockHandler handles the restock run command
type RunRestockHandler struct {
	catalog    domain.CatalogRepository
	ledger     domain.LedgerRepository
	usageNames domain.UsageNames
	publisher  EventPublisher
}

// NewRunRestockHandler creates a new restock run handler
func NewRunRestockHandler(catalog domain.CatalogRepository, ledger domain.LedgerRepository, usageNames domain.UsageNames, publisher EventPublisher) *RunRestockHandler {
	return &RunRestockHandler{
		catalog:    catalog,
		ledger:     ledger,
		usageNames: usageNames,
		publisher:  publisher,
	}
}

// Handle computes the restock lines and opens the orders atomically. An
// empty candidate set is a normal outcome, not an error. A data integrity
// failure aborts the whole batch before anything is written.
func (h *RunRestockHandler) Handle(ctx context.Context, cmd RunRestockCommand) (*RunRestockResult, error) {
	preparedAt := cmd.PreparedAt
	if preparedAt.IsZero() {
		preparedAt = time.Now()
	}

	result := &RunRestockResult{RunID: uuid.NewString()}

	items, err := h.catalog.FindAllItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	openSums, err := h.ledger.SumOpenOrderAmounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load open orders: %w", err)
	}

	lines, err := restock.Lines(items, openSums)
	if err != nil {
		return nil, err
	}
	result.Lines = lines

	if len(lines) == 0 {
		logger.Info(ctx).
			Str("run_id", result.RunID).
			Msg("No items need restock")
		return result, nil
	}

	usageLabel := func(entry domain.LedgerEntry) string {
		return h.usageNames.Resolve(entry.UsageCode, nil)
	}

	requests := restock.Requests(lines)
	var opened, affected int
	for attempt := 1; ; attempt++ {
		opened, affected, err = h.ledger.OpenRestockOrders(ctx, requests, preparedAt, usageLabel)
		if err == nil {
			break
		}
		if !domain.IsTransient(err) || attempt >= maxAttempts {
			return nil, fmt.Errorf("failed to open restock orders: %w", err)
		}
		logger.Warn(ctx).
			Err(err).
			Int("attempt", attempt).
			Str("run_id", result.RunID).
			Msg("Restock transaction conflicted, retrying")
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	result.OrdersOpened = opened
	result.BookingsAffected = affected

	logger.Info(ctx).
		Str("run_id", result.RunID).
		Int("orders_opened", opened).
		Int("bookings_affected", affected).
		Msg("Restock run completed")

	if h.publisher != nil {
		event := kafka.OrderPreparedEvent{
			RunID:            result.RunID,
			OrdersOpened:     opened,
			BookingsAffected: affected,
		}
		if err := h.publisher.PublishOrderPrepared(ctx, event); err != nil {
			// The run committed; a lost event must not fail it.
			logger.Error(ctx).
				Err(err).
				Str("run_id", result.RunID).
				Msg("Failed to publish order prepared event")
		}
	}

	return result, nil
}
