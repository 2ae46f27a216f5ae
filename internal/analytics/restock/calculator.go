// Package restock determines which catalog items need reordering and in
// which quantities, honoring pack-size rounding and per-item order caps.
package restock

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/sizes"
)

// Line is one computed restock order line
type Line struct {
	ItemID     uint   `json:"item_id"`
	ItemName   string `json:"item_name"`
	DemandName string `json:"demand_name"`

	OrderUnit  string `json:"order_unit"`
	OrderUnits int    `json:"order_units"`
	BaseUnit   string `json:"base_unit"`
	BaseAmount int    `json:"base_amount"`

	MinStock int `json:"min_stock"`
	MaxStock int `json:"max_stock"`
	Pending  int `json:"pending"`
	// PendingText is the pending stock in the pack a human would say it in
	PendingText string `json:"pending_text"`
}

// AmountText renders the order quantity, appending the base-unit equivalent
// only when it differs from the order unit.
func (l Line) AmountText() string {
	text := strconv.Itoa(l.OrderUnits) + " " + l.OrderUnit
	if l.BaseUnit != "" && l.BaseUnit != l.OrderUnit && l.BaseAmount != l.OrderUnits {
		text += " = " + strconv.Itoa(l.BaseAmount) + " " + l.BaseUnit
	}
	return text
}

// Lines computes the restock order lines for a catalog snapshot.
// openOrderSums carries per item the summed amount_desired of its open
// orders. An item whose pending stock sits at min_stock still triggers a
// restock; one sitting exactly at max_stock does not.
//
// An item without a valid order pack aborts the whole run with a
// DataIntegrityError: a partial order set is worse than none.
func Lines(items []domain.Item, openOrderSums map[uint]int) ([]Line, error) {
	var lines []Line

	for i := range items {
		item := &items[i]

		pending := item.CurrentQuantity + openOrderSums[item.ID]
		if pending > item.MinStock || pending >= item.MaxStock {
			continue
		}

		needed := item.MaxStock - pending
		if needed < 0 {
			needed = 0
		}

		orderSize := item.OrderSize()
		if orderSize == nil || orderSize.Amount <= 0 {
			return nil, &domain.DataIntegrityError{ItemID: item.ID, Reason: "no valid order pack size"}
		}

		orderUnits := 0
		if needed > 0 {
			orderUnits = needed / orderSize.Amount
			if orderUnits < 1 {
				orderUnits = 1
			}
		}
		if item.MaxOrderQuantity > 0 && orderUnits > item.MaxOrderQuantity {
			orderUnits = item.MaxOrderQuantity
		}

		baseAmount := orderUnits * orderSize.Amount
		if baseAmount <= 0 {
			continue
		}

		line := Line{
			ItemID:      item.ID,
			ItemName:    item.Name,
			OrderUnit:   orderSize.Unit,
			OrderUnits:  orderUnits,
			BaseAmount:  baseAmount,
			MinStock:    item.MinStock,
			MaxStock:    item.MaxStock,
			Pending:     pending,
			PendingText: sizes.Resolve(item.Sizes, float64(pending)).Text(),
		}
		if base := item.BaseSize(); base != nil {
			line.BaseUnit = base.Unit
		}
		if item.Demand != nil {
			line.DemandName = item.Demand.Name
		}
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool {
		return strings.ToLower(lines[i].ItemName) < strings.ToLower(lines[j].ItemName)
	})

	return lines, nil
}

// Requests converts lines into the order requests the ledger store opens
func Requests(lines []Line) []domain.RestockOrderRequest {
	requests := make([]domain.RestockOrderRequest, 0, len(lines))
	for _, line := range lines {
		requests = append(requests, domain.RestockOrderRequest{
			ItemID:        line.ItemID,
			AmountDesired: line.BaseAmount,
		})
	}
	return requests
}
