package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/kafka"
)

type fakeCatalog struct {
	items []domain.Item
	err   error
}

func (f *fakeCatalog) FindAllItems() ([]domain.Item, error) { return f.items, f.err }
func (f *fakeCatalog) FindItemsNearExpiry(time.Time) ([]domain.Item, error) {
	return nil, nil
}
func (f *fakeCatalog) FindDemandItemIDs(string) (map[uint]bool, error) { return nil, nil }

type fakeLedger struct {
	entries  []domain.LedgerEntry
	orders   []domain.Order
	openSums map[uint]int

	openCalls int
	openErrs  []error
	opened    int
	affected  int

	pruneCutoff time.Time
	pruned      domain.PruneCounts
}

func (f *fakeLedger) CreateEntry(_ context.Context, entry *domain.LedgerEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLedger) FindEntriesBetween(from, to time.Time) ([]domain.LedgerEntry, error) {
	var out []domain.LedgerEntry
	for _, entry := range f.entries {
		if !entry.OccurredAt.Before(from) && entry.OccurredAt.Before(to) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeLedger) FindAllOrders() ([]domain.Order, error) { return f.orders, nil }

func (f *fakeLedger) SumOpenOrderAmounts() (map[uint]int, error) { return f.openSums, nil }

func (f *fakeLedger) OpenRestockOrders(_ context.Context, requests []domain.RestockOrderRequest, _ time.Time, _ func(domain.LedgerEntry) string) (int, int, error) {
	call := f.openCalls
	f.openCalls++
	if call < len(f.openErrs) && f.openErrs[call] != nil {
		return 0, 0, f.openErrs[call]
	}
	f.opened = len(requests)
	f.affected = len(requests) * 2
	return f.opened, f.affected, nil
}

func (f *fakeLedger) PruneOlderThan(cutoff time.Time) (domain.PruneCounts, error) {
	f.pruneCutoff = cutoff
	return f.pruned, nil
}

type fakePublisher struct {
	orderEvents []kafka.OrderPreparedEvent
	weekEvents  []kafka.WeekAggregatedEvent
	err         error
}

func (f *fakePublisher) PublishOrderPrepared(_ context.Context, event kafka.OrderPreparedEvent) error {
	f.orderEvents = append(f.orderEvents, event)
	return f.err
}

func (f *fakePublisher) PublishWeekAggregated(_ context.Context, event kafka.WeekAggregatedEvent) error {
	f.weekEvents = append(f.weekEvents, event)
	return f.err
}

func needyItem(id uint, name string) domain.Item {
	return domain.Item{
		ID:       id,
		Name:     name,
		MinStock: 10,
		MaxStock: 50,
		Sizes: []domain.PackSize{
			{ItemID: id, Unit: "piece", Amount: 1},
			{ItemID: id, Unit: "box", Amount: 12, IsDefault: true},
		},
	}
}

func TestRunRestockOpensOrders(t *testing.T) {
	catalog := &fakeCatalog{items: []domain.Item{needyItem(1, "Gloves")}}
	ledger := &fakeLedger{}
	publisher := &fakePublisher{}
	handler := NewRunRestockHandler(catalog, ledger, domain.DefaultUsageNames(), publisher)

	result, err := handler.Handle(context.Background(), RunRestockCommand{})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(result.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(result.Lines))
	}
	if result.OrdersOpened != 1 {
		t.Errorf("OrdersOpened = %d, want 1", result.OrdersOpened)
	}
	if result.RunID == "" {
		t.Error("RunID must be set")
	}
	if len(publisher.orderEvents) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.orderEvents))
	}
	if publisher.orderEvents[0].RunID != result.RunID {
		t.Errorf("event RunID = %q, want %q", publisher.orderEvents[0].RunID, result.RunID)
	}
}

func TestRunRestockNothingNeeded(t *testing.T) {
	full := needyItem(1, "Gloves")
	full.CurrentQuantity = 50

	catalog := &fakeCatalog{items: []domain.Item{full}}
	ledger := &fakeLedger{}
	publisher := &fakePublisher{}
	handler := NewRunRestockHandler(catalog, ledger, domain.DefaultUsageNames(), publisher)

	result, err := handler.Handle(context.Background(), RunRestockCommand{})
	if err != nil {
		t.Fatalf("empty candidate set must not error: %v", err)
	}
	if len(result.Lines) != 0 || result.OrdersOpened != 0 {
		t.Errorf("expected zero-count success, got %+v", result)
	}
	if ledger.openCalls != 0 {
		t.Errorf("no orders should be opened, got %d calls", ledger.openCalls)
	}
	if len(publisher.orderEvents) != 0 {
		t.Errorf("no event should be published for an empty run")
	}
}

func TestRunRestockIntegrityErrorAbortsBeforeWrites(t *testing.T) {
	broken := domain.Item{ID: 7, Name: "Masks", MinStock: 10, MaxStock: 50}
	catalog := &fakeCatalog{items: []domain.Item{broken}}
	ledger := &fakeLedger{}
	handler := NewRunRestockHandler(catalog, ledger, domain.DefaultUsageNames(), nil)

	_, err := handler.Handle(context.Background(), RunRestockCommand{})
	if err == nil {
		t.Fatal("expected error")
	}
	var integrityErr *domain.DataIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected DataIntegrityError, got %T: %v", err, err)
	}
	if ledger.openCalls != 0 {
		t.Errorf("nothing may be written after an integrity failure, got %d calls", ledger.openCalls)
	}
}

func TestRunRestockRetriesTransientErrors(t *testing.T) {
	catalog := &fakeCatalog{items: []domain.Item{needyItem(1, "Gloves")}}
	ledger := &fakeLedger{
		openErrs: []error{
			&domain.TransientError{Err: errors.New("serialization failure")},
			&domain.TransientError{Err: errors.New("deadlock detected")},
		},
	}
	handler := NewRunRestockHandler(catalog, ledger, domain.DefaultUsageNames(), nil)

	result, err := handler.Handle(context.Background(), RunRestockCommand{})
	if err != nil {
		t.Fatalf("third attempt should succeed: %v", err)
	}
	if ledger.openCalls != 3 {
		t.Errorf("openCalls = %d, want 3", ledger.openCalls)
	}
	if result.OrdersOpened != 1 {
		t.Errorf("OrdersOpened = %d, want 1", result.OrdersOpened)
	}
}

func TestRunRestockGivesUpAfterMaxAttempts(t *testing.T) {
	transient := &domain.TransientError{Err: errors.New("lock timeout")}
	catalog := &fakeCatalog{items: []domain.Item{needyItem(1, "Gloves")}}
	ledger := &fakeLedger{openErrs: []error{transient, transient, transient}}
	handler := NewRunRestockHandler(catalog, ledger, domain.DefaultUsageNames(), nil)

	_, err := handler.Handle(context.Background(), RunRestockCommand{})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if ledger.openCalls != maxAttempts {
		t.Errorf("openCalls = %d, want %d", ledger.openCalls, maxAttempts)
	}
}

func TestRunRestockDoesNotRetryPermanentErrors(t *testing.T) {
	catalog := &fakeCatalog{items: []domain.Item{needyItem(1, "Gloves")}}
	ledger := &fakeLedger{openErrs: []error{errors.New("constraint violation")}}
	handler := NewRunRestockHandler(catalog, ledger, domain.DefaultUsageNames(), nil)

	_, err := handler.Handle(context.Background(), RunRestockCommand{})
	if err == nil {
		t.Fatal("expected error")
	}
	if ledger.openCalls != 1 {
		t.Errorf("openCalls = %d, want 1 for a permanent error", ledger.openCalls)
	}
}

func TestRunRestockPublishFailureDoesNotFailRun(t *testing.T) {
	catalog := &fakeCatalog{items: []domain.Item{needyItem(1, "Gloves")}}
	ledger := &fakeLedger{}
	publisher := &fakePublisher{err: errors.New("broker down")}
	handler := NewRunRestockHandler(catalog, ledger, domain.DefaultUsageNames(), publisher)

	result, err := handler.Handle(context.Background(), RunRestockCommand{})
	if err != nil {
		t.Fatalf("a lost event must not fail the committed run: %v", err)
	}
	if result.OrdersOpened != 1 {
		t.Errorf("OrdersOpened = %d, want 1", result.OrdersOpened)
	}
}
