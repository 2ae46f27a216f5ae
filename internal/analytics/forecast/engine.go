// Package forecast blends recent and all-time order demand into a weighted
// forecast with a safety-stock and reorder-point recommendation. The output
// is advisory; catalog thresholds are never changed automatically.
package forecast

import (
	"math"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/stats"
)

// Operational policy constants. Lead time covers Monday order to Wednesday
// delivery the following week (9 days); 1.65 is the 95th-percentile z-score.
const (
	RecentWeight        = 0.7
	LeadTimeWeeks       = 1.285
	TargetCoverageWeeks = 3
	SafetyFactor        = 1.65
	RecentWindowDays    = 28
)

// RangeStats summarizes order demand over one time range
type RangeStats struct {
	AvgDemand           float64 `json:"avg_demand"`
	MaxDemand           int     `json:"max_demand"`
	MinDemand           int     `json:"min_demand"`
	StockOutOccurrences int     `json:"stock_out_occurrences"`
	Sd                  float64 `json:"sd"`
}

// Report is the forecast for one item
type Report struct {
	ItemID   uint   `json:"item_id"`
	ItemName string `json:"item_name"`

	All    RangeStats `json:"all"`
	Recent RangeStats `json:"recent"`

	TrendPct       float64 `json:"trend_pct"`
	ForecastDemand float64 `json:"forecast_demand"`
	SafetyStock    float64 `json:"safety_stock"`
	ForecastMin    float64 `json:"forecast_min"`
	ForecastMax    float64 `json:"forecast_max"`
}

// SkipReason explains why an item produced no forecast
type SkipReason struct {
	ItemID   uint   `json:"item_id"`
	ItemName string `json:"item_name"`
	Reason   string `json:"reason"`
}

// ForItem forecasts one item from its order history. Items without a recent
// order, or whose history spans fewer than two distinct order dates (a week
// span of zero), are skipped rather than errored: that is the steady state of
// a new or rarely ordered item.
func ForItem(item *domain.Item, orders []domain.Order, now time.Time) (*Report, *SkipReason) {
	if len(orders) == 0 {
		return nil, &SkipReason{ItemID: item.ID, ItemName: item.Name, Reason: "no orders"}
	}

	recentThreshold := now.AddDate(0, 0, -RecentWindowDays)
	var recentOrders []domain.Order
	for _, order := range orders {
		if !order.OrderDate.Before(recentThreshold) {
			recentOrders = append(recentOrders, order)
		}
	}
	if len(recentOrders) == 0 {
		return nil, &SkipReason{ItemID: item.ID, ItemName: item.Name, Reason: "no recent orders"}
	}

	statsAll, ok := rangeStats(orders, item)
	if !ok {
		return nil, &SkipReason{ItemID: item.ID, ItemName: item.Name, Reason: "order history spans less than one week"}
	}
	statsRecent, ok := rangeStats(recentOrders, item)
	if !ok {
		return nil, &SkipReason{ItemID: item.ID, ItemName: item.Name, Reason: "recent orders span less than one week"}
	}

	trend := 0.0
	if statsAll.AvgDemand != 0 {
		trend = (statsRecent.AvgDemand - statsAll.AvgDemand) / statsAll.AvgDemand * 100
	}

	forecastDemand := math.Ceil(statsRecent.AvgDemand*RecentWeight + statsAll.AvgDemand*(1-RecentWeight))
	forecastSd := statsRecent.Sd*RecentWeight + statsAll.Sd*(1-RecentWeight)

	safetyStock := SafetyFactor * forecastSd * math.Sqrt(LeadTimeWeeks)
	forecastMin := forecastDemand*LeadTimeWeeks + safetyStock
	forecastMax := forecastMin + forecastDemand*TargetCoverageWeeks

	return &Report{
		ItemID:         item.ID,
		ItemName:       item.Name,
		All:            statsAll,
		Recent:         statsRecent,
		TrendPct:       math.Round(trend*100) / 100,
		ForecastDemand: forecastDemand,
		SafetyStock:    safetyStock,
		ForecastMin:    forecastMin,
		ForecastMax:    forecastMax,
	}, nil
}

func rangeStats(orders []domain.Order, item *domain.Item) (RangeStats, bool) {
	minDate := orders[0].OrderDate
	maxDate := orders[0].OrderDate
	total := 0
	amounts := make([]float64, 0, len(orders))

	result := RangeStats{
		MaxDemand: orders[0].AmountDesired,
		MinDemand: orders[0].AmountDesired,
	}

	stockOutLevel := item.MaxStock - item.MinStock
	for _, order := range orders {
		if order.OrderDate.Before(minDate) {
			minDate = order.OrderDate
		}
		if order.OrderDate.After(maxDate) {
			maxDate = order.OrderDate
		}
		total += order.AmountDesired
		amounts = append(amounts, float64(order.AmountDesired))

		if order.AmountDesired > result.MaxDemand {
			result.MaxDemand = order.AmountDesired
		}
		if order.AmountDesired < result.MinDemand {
			result.MinDemand = order.AmountDesired
		}
		if order.AmountDesired >= stockOutLevel {
			result.StockOutOccurrences++
		}
	}

	weekSpan := weeksBetween(minDate, maxDate)
	if weekSpan == 0 {
		return RangeStats{}, false
	}

	result.AvgDemand = float64(total) / float64(weekSpan)
	result.Sd = stats.SampleStddev(amounts)
	return result, true
}

// weeksBetween returns the number of whole weeks between two order dates.
// Calendar days are counted rather than hours so a week containing a
// daylight saving transition still counts as a full week.
func weeksBetween(from, to time.Time) int {
	if to.Before(from) {
		from, to = to, from
	}
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * 7 * time.Hour))
}
