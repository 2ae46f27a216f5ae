package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Reserved internal usage codes. External usages carry non-negative codes
// referencing the usages table of the surrounding application.
const (
	UsageCorrection = -1
	UsageWriteBack  = -2
	UsageSpoilage   = -3
	UsageDelivery   = -4
)

// UsageNames resolves internal usage codes to display labels. It is injected
// into the components that render booking logs instead of being looked up
// through package state.
type UsageNames map[int]string

// DefaultUsageNames returns the labels for the reserved internal codes
func DefaultUsageNames() UsageNames {
	return UsageNames{
		UsageCorrection: "inventory correction",
		UsageWriteBack:  "write-back",
		UsageSpoilage:   "spoilage",
		UsageDelivery:   "delivery",
	}
}

// Resolve returns the label for a usage code, falling back to a generic label
// for unknown internal codes.
func (n UsageNames) Resolve(code int, external func(int) string) string {
	if code >= 0 {
		if external != nil {
			return external(code)
		}
		return fmt.Sprintf("usage-%d", code)
	}
	if name, ok := n[code]; ok {
		return name
	}
	return "internal"
}

// LedgerEntry is one inventory movement (booking). Positive amounts are
// consumption, negative amounts flow stock back in.
type LedgerEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ItemID     uint      `json:"item_id" gorm:"not null;index"`
	UsageCode  int       `json:"usage_code" gorm:"not null"`
	Amount     int       `json:"amount" gorm:"not null"`
	StreamID   int       `json:"stream_id" gorm:"not null;default:0;index"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null;index"`
	OrderID    *uint     `json:"order_id" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// OrderLogEntry is one snapshotted booking folded into an order
type OrderLogEntry struct {
	Time   time.Time `json:"time"`
	Amount int       `json:"amount"`
	Usage  string    `json:"usage"`
}

// OrderLog is the ordered booking snapshot stored on an order as JSON
type OrderLog []OrderLogEntry

// Value implements driver.Valuer for gorm JSON storage
func (l OrderLog) Value() (driver.Value, error) {
	if l == nil {
		l = OrderLog{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for gorm JSON storage
func (l *OrderLog) Scan(value interface{}) error {
	if value == nil {
		*l = OrderLog{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported order log type %T", value)
	}
	return json.Unmarshal(data, l)
}

// Order is one restock order, open until fully delivered
type Order struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ItemID          uint      `json:"item_id" gorm:"not null;index"`
	OrderDate       time.Time `json:"order_date" gorm:"not null;index"`
	AmountDesired   int       `json:"amount_desired" gorm:"not null"`
	AmountDelivered int       `json:"amount_delivered" gorm:"not null;default:0"`
	IsOpen          bool      `json:"is_open" gorm:"not null;default:true;index"`
	Log             OrderLog  `json:"log" gorm:"type:jsonb"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// WeeklyStat is the per-item, per-week aggregate. Rows are keyed by
// (item_id, week_start) and overwritten on re-aggregation.
type WeeklyStat struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ItemID            uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_item_week"`
	WeekStart         time.Time `json:"week_start" gorm:"not null;uniqueIndex:idx_item_week;index"`
	ConsumptionTotal  int       `json:"consumption_total" gorm:"not null;default:0"`
	ConsumptionMax    int       `json:"consumption_max" gorm:"not null;default:0"`
	ConsumptionStddev float64   `json:"consumption_stddev" gorm:"type:decimal(14,4);not null;default:0"`
	AdjustmentTotal   int       `json:"adjustment_total" gorm:"not null;default:0"`
	BookingMax        int       `json:"booking_max" gorm:"not null;default:0"`
	BookingCount      int       `json:"booking_count" gorm:"not null;default:0"`
	AggregatedAt      time.Time `json:"aggregated_at" gorm:"not null"`
}

// TableName specifies the table name
func (WeeklyStat) TableName() string {
	return "weekly_stats"
}
