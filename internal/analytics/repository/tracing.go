package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

var tracer = otel.Tracer("analytics-repository")

// TracingLedgerRepository decorates the ledger store with tracing on the
// write paths. Reads carry no request context and pass through untouched.
type TracingLedgerRepository struct {
	next domain.LedgerRepository
}

// NewTracingLedgerRepository creates a new ledger repository with tracing
func NewTracingLedgerRepository(db *gorm.DB) *TracingLedgerRepository {
	return &TracingLedgerRepository{next: NewGormLedgerRepository(db)}
}

// CreateEntry records one booking with tracing, used by the event consumer
func (r *TracingLedgerRepository) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	ctx, span := tracer.Start(ctx, "repository.CreateEntry",
		trace.WithAttributes(
			attribute.Int("ledger.item_id", int(entry.ItemID)),
			attribute.Int("ledger.usage_code", entry.UsageCode),
			attribute.Int("ledger.amount", entry.Amount),
			attribute.Int("ledger.stream_id", entry.StreamID),
		),
	)
	defer span.End()

	err := r.next.CreateEntry(ctx, entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("ledger.id", int(entry.ID)))
	return nil
}

// OpenRestockOrders with tracing
func (r *TracingLedgerRepository) OpenRestockOrders(ctx context.Context, requests []domain.RestockOrderRequest, preparedAt time.Time, usageLabel func(domain.LedgerEntry) string) (int, int, error) {
	ctx, span := tracer.Start(ctx, "repository.OpenRestockOrders",
		trace.WithAttributes(
			attribute.Int("restock.requests", len(requests)),
			attribute.String("restock.prepared_at", preparedAt.Format(time.RFC3339)),
		),
	)
	defer span.End()

	ordersOpened, bookingsAffected, err := r.next.OpenRestockOrders(ctx, requests, preparedAt, usageLabel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, 0, err
	}

	span.SetAttributes(
		attribute.Int("restock.orders_opened", ordersOpened),
		attribute.Int("restock.bookings_affected", bookingsAffected),
	)
	return ordersOpened, bookingsAffected, nil
}

func (r *TracingLedgerRepository) FindEntriesBetween(from, to time.Time) ([]domain.LedgerEntry, error) {
	return r.next.FindEntriesBetween(from, to)
}

func (r *TracingLedgerRepository) FindAllOrders() ([]domain.Order, error) {
	return r.next.FindAllOrders()
}

func (r *TracingLedgerRepository) SumOpenOrderAmounts() (map[uint]int, error) {
	return r.next.SumOpenOrderAmounts()
}

func (r *TracingLedgerRepository) PruneOlderThan(cutoff time.Time) (domain.PruneCounts, error) {
	return r.next.PruneOlderThan(cutoff)
}
