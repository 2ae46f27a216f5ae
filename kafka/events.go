package kafka

import "time"

// BookingRecordedEvent is published by the scanning devices for every
// inventory movement and consumed into the ledger.
type BookingRecordedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ItemID     uint      `json:"item_id"`
	UsageCode  int       `json:"usage_code"`
	Amount     int       `json:"amount"`
	StreamID   int       `json:"stream_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderPreparedEvent announces a completed restock run
type OrderPreparedEvent struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	RunID            string    `json:"run_id"`
	OrdersOpened     int       `json:"orders_opened"`
	BookingsAffected int       `json:"bookings_affected"`
	Timestamp        time.Time `json:"timestamp"`
}

// WeekAggregatedEvent announces a completed weekly aggregation run
type WeekAggregatedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	RunID        string    `json:"run_id"`
	WeekStart    time.Time `json:"week_start"`
	RowsUpserted int       `json:"rows_upserted"`
	Timestamp    time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeBookingRecorded = "booking.recorded"
	EventTypeOrderPrepared   = "order.prepared"
	EventTypeWeekAggregated  = "week.aggregated"
)

// Kafka topics
const (
	TopicBookingRecorded = "booking-recorded"
	TopicOrderPrepared   = "order-prepared"
	TopicWeekAggregated  = "week-aggregated"
)
