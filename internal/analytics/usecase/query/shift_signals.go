package query

import (
	"fmt"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/shiftsignal"
)

// ShiftSignalsQuery bounds the ledger window to score. A zero From defaults
// to 90 days before To; a zero To defaults to now.
type ShiftSignalsQuery struct {
	From time.Time
	To   time.Time
}

// ShiftSignalsHandler handles the shift anomaly query
type ShiftSignalsHandler struct {
	catalog  domain.CatalogRepository
	ledger   domain.LedgerRepository
	detector *shiftsignal.Detector
}

// NewShiftSignalsHandler creates a new shift signals handler
func NewShiftSignalsHandler(catalog domain.CatalogRepository, ledger domain.LedgerRepository, detector *shiftsignal.Detector) *ShiftSignalsHandler {
	return &ShiftSignalsHandler{
		catalog:  catalog,
		ledger:   ledger,
		detector: detector,
	}
}

// Handle scores every shift instance in the window against its own history
func (h *ShiftSignalsHandler) Handle(query ShiftSignalsQuery) (*shiftsignal.Result, error) {
	to := query.To
	if to.IsZero() {
		to = time.Now()
	}
	from := query.From
	if from.IsZero() {
		from = to.AddDate(0, 0, -90)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("invalid window: from %s is not before to %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	entries, err := h.ledger.FindEntriesBetween(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger window: %w", err)
	}

	hygieneItems, err := h.catalog.FindDemandItemIDs(domain.HygieneDemand)
	if err != nil {
		return nil, fmt.Errorf("failed to load hygiene items: %w", err)
	}

	result := h.detector.Run(entries, hygieneItems)
	return &result, nil
}
