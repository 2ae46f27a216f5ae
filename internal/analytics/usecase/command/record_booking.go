package command

import (
	"context"
	"fmt"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

// RecordBookingCommand represents one inventory movement to record
type RecordBookingCommand struct {
	ItemID     uint
	UsageCode  int
	Amount     int
	StreamID   int
	OccurredAt time.Time
}

// RecordBookingHandler handles booking ingestion from the event stream
type RecordBookingHandler struct {
	ledger domain.LedgerRepository
}

// NewRecordBookingHandler creates a new booking handler
func NewRecordBookingHandler(ledger domain.LedgerRepository) *RecordBookingHandler {
	return &RecordBookingHandler{ledger: ledger}
}

// Handle validates and stores one ledger entry
func (h *RecordBookingHandler) Handle(ctx context.Context, cmd RecordBookingCommand) error {
	if cmd.ItemID == 0 {
		return fmt.Errorf("item_id is required")
	}

	if cmd.Amount == 0 {
		return fmt.Errorf("amount cannot be zero")
	}

	occurredAt := cmd.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	entry := &domain.LedgerEntry{
		ItemID:     cmd.ItemID,
		UsageCode:  cmd.UsageCode,
		Amount:     cmd.Amount,
		StreamID:   cmd.StreamID,
		OccurredAt: occurredAt,
	}

	if err := h.ledger.CreateEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to record booking: %w", err)
	}

	return nil
}
