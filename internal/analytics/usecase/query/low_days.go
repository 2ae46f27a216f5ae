package query

import (
	"fmt"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/shiftsignal"
)

// LowDaysQuery bounds the daily series to inspect. A zero From defaults to
// 90 days before To; a zero To defaults to now.
type LowDaysQuery struct {
	From time.Time
	To   time.Time
}

// LowDaysHandler handles the day-granularity low activity query
type LowDaysHandler struct {
	catalog domain.CatalogRepository
	ledger  domain.LedgerRepository
}

// NewLowDaysHandler creates a new low days handler
func NewLowDaysHandler(catalog domain.CatalogRepository, ledger domain.LedgerRepository) *LowDaysHandler {
	return &LowDaysHandler{catalog: catalog, ledger: ledger}
}

// Handle flags every day whose raw booking count fell below its own centered
// rolling average
func (h *LowDaysHandler) Handle(query LowDaysQuery) (*shiftsignal.DayResult, error) {
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

	result := shiftsignal.LowDays(entries, hygieneItems, from, to)
	return &result, nil
}
