package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/shiftsignal"
	"github.com/lagerkern/replenish/internal/analytics/usecase/command"
	"github.com/lagerkern/replenish/internal/analytics/usecase/query"
)

type fakeCatalog struct {
	items []domain.Item
}

func (f *fakeCatalog) FindAllItems() ([]domain.Item, error) { return f.items, nil }

func (f *fakeCatalog) FindItemsNearExpiry(before time.Time) ([]domain.Item, error) {
	return nil, nil
}

func (f *fakeCatalog) FindDemandItemIDs(demandName string) (map[uint]bool, error) {
	return nil, nil
}

type fakeLedger struct {
	windowFrom time.Time
	windowTo   time.Time
}

func (f *fakeLedger) CreateEntry(_ context.Context, entry *domain.LedgerEntry) error { return nil }

func (f *fakeLedger) FindEntriesBetween(from, to time.Time) ([]domain.LedgerEntry, error) {
	f.windowFrom, f.windowTo = from, to
	return nil, nil
}

func (f *fakeLedger) FindAllOrders() ([]domain.Order, error) { return nil, nil }

func (f *fakeLedger) SumOpenOrderAmounts() (map[uint]int, error) { return nil, nil }

func (f *fakeLedger) OpenRestockOrders(_ context.Context, requests []domain.RestockOrderRequest, _ time.Time, _ func(domain.LedgerEntry) string) (int, int, error) {
	return len(requests), 0, nil
}

func (f *fakeLedger) PruneOlderThan(cutoff time.Time) (domain.PruneCounts, error) {
	return domain.PruneCounts{}, nil
}

type fakeStats struct{}

func (f *fakeStats) UpsertWeeklyStats(rows []domain.WeeklyStat) (int, error) {
	return len(rows), nil
}

func (f *fakeStats) FindWeeklyStats(itemID uint, since time.Time) ([]domain.WeeklyStat, error) {
	return nil, nil
}

func TestAggregateWeekWeekStartSources(t *testing.T) {
	catalog := &fakeCatalog{}
	ledger := &fakeLedger{}
	stats := &fakeStats{}
	handler := NewAnalyticsHandler(
		command.NewRunRestockHandler(catalog, ledger, domain.DefaultUsageNames(), nil),
		command.NewAggregateWeekHandler(ledger, stats, nil),
		query.NewRestockCheckHandler(catalog, ledger),
		query.NewForecastHandler(catalog, ledger),
		query.NewShiftSignalsHandler(catalog, ledger, shiftsignal.NewDetector(shiftsignal.DefaultCalendar(), shiftsignal.DefaultConfig())),
		query.NewLowDaysHandler(catalog, ledger),
		query.NewWeeklyStatsHandler(stats),
		query.NewNearExpiryHandler(catalog),
		nil,
	)

	monday := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantFrom   time.Time
	}{
		{
			name:       "query parameter selects the week",
			target:     "/api/stats/aggregate?week_start=2026-08-17",
			wantStatus: http.StatusOK,
			wantFrom:   monday,
		},
		{
			name:       "body overrides query parameter",
			target:     "/api/stats/aggregate?week_start=2026-08-10",
			body:       `{"week_start":"2026-08-17"}`,
			wantStatus: http.StatusOK,
			wantFrom:   monday,
		},
		{
			name:       "invalid query parameter rejected",
			target:     "/api/stats/aggregate?week_start=yesterday",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger.windowFrom = time.Time{}

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			r := httptest.NewRequest(http.MethodPost, tt.target, body)
			w := httptest.NewRecorder()

			handler.AggregateWeek(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if !ledger.windowFrom.Equal(tt.wantFrom) {
				t.Errorf("aggregated week start = %v, want %v", ledger.windowFrom, tt.wantFrom)
			}
		})
	}
}
