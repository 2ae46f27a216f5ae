package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

var testNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func order(daysAgo, amount int) domain.Order {
	return domain.Order{
		OrderDate:     testNow.AddDate(0, 0, -daysAgo),
		AmountDesired: amount,
	}
}

func TestForItemSkips(t *testing.T) {
	item := &domain.Item{ID: 1, Name: "Gloves", MinStock: 10, MaxStock: 50}

	tests := []struct {
		name   string
		orders []domain.Order
		reason string
	}{
		{
			name:   "no orders",
			orders: nil,
			reason: "no orders",
		},
		{
			name:   "only stale orders",
			orders: []domain.Order{order(60, 10), order(40, 10)},
			reason: "no recent orders",
		},
		{
			name:   "single order date",
			orders: []domain.Order{order(7, 10)},
			reason: "order history spans less than one week",
		},
		{
			name:   "orders closer than a week",
			orders: []domain.Order{order(9, 10), order(7, 10)},
			reason: "order history spans less than one week",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, skip := ForItem(item, tt.orders, testNow)
			if report != nil {
				t.Fatalf("expected skip, got report %+v", report)
			}
			if skip == nil {
				t.Fatal("expected a skip reason")
			}
			if skip.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", skip.Reason, tt.reason)
			}
			if skip.ItemID != item.ID {
				t.Errorf("ItemID = %d, want %d", skip.ItemID, item.ID)
			}
		})
	}
}

func TestForItemStableDemand(t *testing.T) {
	item := &domain.Item{ID: 1, Name: "Gloves", MinStock: 10, MaxStock: 50}
	// Two identical orders two weeks apart, both inside the recent window.
	orders := []domain.Order{order(21, 10), order(7, 10)}

	report, skip := ForItem(item, orders, testNow)
	if skip != nil {
		t.Fatalf("unexpected skip: %+v", skip)
	}

	if report.All.AvgDemand != 10 {
		t.Errorf("All.AvgDemand = %v, want 10", report.All.AvgDemand)
	}
	if report.Recent.AvgDemand != 10 {
		t.Errorf("Recent.AvgDemand = %v, want 10", report.Recent.AvgDemand)
	}
	if report.TrendPct != 0 {
		t.Errorf("TrendPct = %v, want 0", report.TrendPct)
	}
	if report.ForecastDemand != 10 {
		t.Errorf("ForecastDemand = %v, want 10", report.ForecastDemand)
	}
	if report.SafetyStock != 0 {
		t.Errorf("SafetyStock = %v, want 0 for constant demand", report.SafetyStock)
	}
	wantMin := 10 * LeadTimeWeeks
	if math.Abs(report.ForecastMin-wantMin) > 1e-9 {
		t.Errorf("ForecastMin = %v, want %v", report.ForecastMin, wantMin)
	}
	wantMax := wantMin + 10*TargetCoverageWeeks
	if math.Abs(report.ForecastMax-wantMax) > 1e-9 {
		t.Errorf("ForecastMax = %v, want %v", report.ForecastMax, wantMax)
	}
}

func TestForItemTrend(t *testing.T) {
	item := &domain.Item{ID: 1, Name: "Gloves", MinStock: 10, MaxStock: 200}
	// All-time: 60 units over 4 weeks. Recent: 50 units over 2 weeks.
	orders := []domain.Order{
		order(35, 10),
		order(21, 20),
		order(7, 30),
	}

	report, skip := ForItem(item, orders, testNow)
	if skip != nil {
		t.Fatalf("unexpected skip: %+v", skip)
	}

	if report.All.AvgDemand != 15 {
		t.Errorf("All.AvgDemand = %v, want 15", report.All.AvgDemand)
	}
	if report.Recent.AvgDemand != 25 {
		t.Errorf("Recent.AvgDemand = %v, want 25", report.Recent.AvgDemand)
	}
	// (25-15)/15*100 rounded to two decimals.
	if report.TrendPct != 66.67 {
		t.Errorf("TrendPct = %v, want 66.67", report.TrendPct)
	}
	// ceil(25*0.7 + 15*0.3) = ceil(22) = 22
	if report.ForecastDemand != 22 {
		t.Errorf("ForecastDemand = %v, want 22", report.ForecastDemand)
	}
}

func TestForItemZeroDemandHasZeroTrend(t *testing.T) {
	item := &domain.Item{ID: 1, Name: "Gloves", MinStock: 10, MaxStock: 50}
	orders := []domain.Order{order(21, 0), order(7, 0)}

	report, skip := ForItem(item, orders, testNow)
	if skip != nil {
		t.Fatalf("unexpected skip: %+v", skip)
	}
	if report.TrendPct != 0 {
		t.Errorf("TrendPct = %v, want 0 when all-time demand is zero", report.TrendPct)
	}
	if report.ForecastDemand != 0 {
		t.Errorf("ForecastDemand = %v, want 0", report.ForecastDemand)
	}
}

func TestRangeStatsStockOuts(t *testing.T) {
	// Stock-out level is max minus min: orders at or above it count.
	item := &domain.Item{ID: 1, Name: "Gloves", MinStock: 10, MaxStock: 50}
	orders := []domain.Order{
		order(21, 40), // exactly at level
		order(14, 41),
		order(7, 39),
	}

	report, skip := ForItem(item, orders, testNow)
	if skip != nil {
		t.Fatalf("unexpected skip: %+v", skip)
	}
	if report.All.StockOutOccurrences != 2 {
		t.Errorf("StockOutOccurrences = %d, want 2", report.All.StockOutOccurrences)
	}
	if report.All.MaxDemand != 41 {
		t.Errorf("MaxDemand = %d, want 41", report.All.MaxDemand)
	}
	if report.All.MinDemand != 39 {
		t.Errorf("MinDemand = %d, want 39", report.All.MinDemand)
	}
}

func TestForItemWeekSpanAcrossClockChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// One calendar week apart, but only 167 wall clock hours: daylight
	// saving starts 2026-03-29 in Berlin. The history still spans a week.
	item := &domain.Item{ID: 1, Name: "Gloves", MinStock: 10, MaxStock: 100}
	orders := []domain.Order{
		{ItemID: 1, OrderDate: time.Date(2026, 3, 23, 9, 0, 0, 0, loc), AmountDesired: 10},
		{ItemID: 1, OrderDate: time.Date(2026, 3, 30, 9, 0, 0, 0, loc), AmountDesired: 10},
	}
	now := time.Date(2026, 3, 31, 0, 0, 0, 0, loc)

	report, skip := ForItem(item, orders, now)
	if skip != nil {
		t.Fatalf("a full calendar week of history must not be skipped: %+v", skip)
	}
	if report.All.AvgDemand != 20 {
		t.Errorf("AvgDemand = %v, want 20 over the one-week span", report.All.AvgDemand)
	}
}
