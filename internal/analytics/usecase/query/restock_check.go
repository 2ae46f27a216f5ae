package query

import (
	"fmt"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/restock"
)

// RestockCheckResult previews a restock run without writing anything
type RestockCheckResult struct {
	NeedsRestock bool           `json:"needs_restock"`
	Lines        []restock.Line `json:"lines"`
}

// RestockCheckHandler handles the read-only restock preview
type RestockCheckHandler struct {
	catalog domain.CatalogRepository
	ledger  domain.LedgerRepository
}

// NewRestockCheckHandler creates a new restock check handler
func NewRestockCheckHandler(catalog domain.CatalogRepository, ledger domain.LedgerRepository) *RestockCheckHandler {
	return &RestockCheckHandler{catalog: catalog, ledger: ledger}
}

// Handle computes the restock lines against the current catalog and open
// orders. The same integrity rules as the real run apply, so a broken pack
// definition surfaces here too.
func (h *RestockCheckHandler) Handle() (*RestockCheckResult, error) {
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

	return &RestockCheckResult{
		NeedsRestock: len(lines) > 0,
		Lines:        lines,
	}, nil
}
