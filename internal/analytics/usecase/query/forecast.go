package query

import (
	"fmt"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/forecast"
)

// ForecastQuery represents the query for the demand forecast report
type ForecastQuery struct {
	// Now anchors the recent window; zero means time.Now()
	Now time.Time
}

// ForecastResult holds the reports plus the items that could not be
// forecast yet.
type ForecastResult struct {
	Reports []forecast.Report     `json:"reports"`
	Skipped []forecast.SkipReason `json:"skipped"`
}

// ForecastHandler handles the forecast query
type ForecastHandler struct {
	catalog domain.CatalogRepository
	ledger  domain.LedgerRepository
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(catalog domain.CatalogRepository, ledger domain.LedgerRepository) *ForecastHandler {
	return &ForecastHandler{catalog: catalog, ledger: ledger}
}

// Handle forecasts every item with enough order history
func (h *ForecastHandler) Handle(query ForecastQuery) (*ForecastResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	items, err := h.catalog.FindAllItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	orders, err := h.ledger.FindAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	ordersByItem := make(map[uint][]domain.Order)
	for _, order := range orders {
		ordersByItem[order.ItemID] = append(ordersByItem[order.ItemID], order)
	}

	result := &ForecastResult{}
	for i := range items {
		item := &items[i]
		report, skip := forecast.ForItem(item, ordersByItem[item.ID], now)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		result.Reports = append(result.Reports, *report)
	}

	return result, nil
}
