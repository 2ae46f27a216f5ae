// Package sizes resolves raw base-unit quantities into the pack a human
// would say: "3 boxes" instead of "36 pieces".
package sizes

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

// Result is a quantity expressed in a pack unit
type Result struct {
	Unit   string  `json:"unit"`
	Amount float64 `json:"amount"`
}

// Text formats the result for labels and order documents
func (r Result) Text() string {
	if r.Unit == "" {
		return ""
	}
	return strconv.FormatFloat(r.Amount, 'f', -1, 64) + " " + r.Unit
}

var half = decimal.New(5, -1)

// Resolve finds the largest pack whose amount divides quantity evenly or to
// exactly .5 and expresses the quantity in that pack's unit. When no pack
// matches, the quantity stays in the smallest pack's unit. A quantity of 0 is
// always 0 in the smallest unit. Packs must belong to one item; ordering of
// the input does not matter.
func Resolve(packs []domain.PackSize, quantity float64) Result {
	if len(packs) == 0 {
		return Result{}
	}

	sorted := make([]domain.PackSize, len(packs))
	copy(sorted, packs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	smallest := sorted[len(sorted)-1]
	result := Result{Unit: smallest.Unit, Amount: quantity}
	if quantity == 0 {
		result.Amount = 0
		return result
	}

	// The .5 test must be exact; float remainders are not.
	q := decimal.NewFromFloat(quantity)
	for _, pack := range sorted {
		if pack.Amount <= 0 {
			continue
		}
		div := q.Div(decimal.NewFromInt(int64(pack.Amount)))
		frac := div.Sub(div.Floor())
		if frac.IsZero() || frac.Equal(half) {
			scaled, _ := div.Float64()
			return Result{Unit: pack.Unit, Amount: scaled}
		}
	}

	return result
}
