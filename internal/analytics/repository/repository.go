package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

// GormCatalogRepository reads item definitions
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Demand{},
		&domain.Item{},
		&domain.PackSize{},
		&domain.LedgerEntry{},
		&domain.Order{},
		&domain.WeeklyStat{},
	)
}

func (r *GormCatalogRepository) FindAllItems() ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Preload("Sizes").Preload("Demand").Find(&items).Error
	return items, err
}

func (r *GormCatalogRepository) FindItemsNearExpiry(before time.Time) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Preload("Sizes").Preload("Demand").
		Where("current_expiry IS NOT NULL AND current_expiry <= ?", before).
		Find(&items).Error
	return items, err
}

func (r *GormCatalogRepository) FindDemandItemIDs(demandName string) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&domain.Item{}).
		Joins("JOIN demands ON demands.id = items.demand_id").
		Where("demands.name = ?", demandName).
		Pluck("items.id", &ids).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// GormLedgerRepository reads and writes bookings and orders
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new ledger repository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormLedgerRepository) FindEntriesBetween(from, to time.Time) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.db.
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Order("occurred_at").
		Find(&entries).Error
	return entries, err
}

func (r *GormLedgerRepository) FindAllOrders() ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Order("order_date").Find(&orders).Error
	return orders, err
}

func (r *GormLedgerRepository) SumOpenOrderAmounts() (map[uint]int, error) {
	type row struct {
		ItemID uint
		Total  int
	}
	var rows []row
	err := r.db.Model(&domain.Order{}).
		Select("item_id, SUM(amount_desired) AS total").
		Where("is_open = ?", true).
		Group("item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[uint]int, len(rows))
	for _, r := range rows {
		sums[r.ItemID] = r.Total
	}
	return sums, nil
}

// OpenRestockOrders creates one open order per request inside a single
// transaction. Each candidate item row is locked so two concurrent restock
// runs cannot fold the same outstanding bookings into two orders. The
// entries folded into an order are snapshotted onto its log and relinked via
// order_id so future aggregation runs do not double-count them.
func (r *GormLedgerRepository) OpenRestockOrders(ctx context.Context, requests []domain.RestockOrderRequest, preparedAt time.Time, usageLabel func(domain.LedgerEntry) string) (int, int, error) {
	ordersOpened := 0
	bookingsAffected := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, request := range requests {
			if request.AmountDesired <= 0 {
				continue
			}

			var item domain.Item
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&item, request.ItemID).Error; err != nil {
				return fmt.Errorf("failed to lock item %d: %w", request.ItemID, err)
			}

			var entries []domain.LedgerEntry
			if err := tx.
				Where("item_id = ? AND order_id IS NULL AND occurred_at <= ?", request.ItemID, preparedAt).
				Order("occurred_at").
				Find(&entries).Error; err != nil {
				return fmt.Errorf("failed to load open bookings for item %d: %w", request.ItemID, err)
			}

			log := make(domain.OrderLog, 0, len(entries))
			for _, entry := range entries {
				log = append(log, domain.OrderLogEntry{
					Time:   entry.OccurredAt,
					Amount: entry.Amount,
					Usage:  usageLabel(entry),
				})
			}

			order := domain.Order{
				ItemID:        request.ItemID,
				OrderDate:     preparedAt,
				AmountDesired: request.AmountDesired,
				IsOpen:        true,
				Log:           log,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("failed to create order for item %d: %w", request.ItemID, err)
			}
			ordersOpened++

			if len(entries) > 0 {
				ids := make([]uint, 0, len(entries))
				for _, entry := range entries {
					ids = append(ids, entry.ID)
				}
				result := tx.Model(&domain.LedgerEntry{}).
					Where("id IN ?", ids).
					Update("order_id", order.ID)
				if result.Error != nil {
					return fmt.Errorf("failed to link bookings to order %d: %w", order.ID, result.Error)
				}
				bookingsAffected += int(result.RowsAffected)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return ordersOpened, bookingsAffected, nil
}

// PruneOlderThan removes closed orders, folded bookings and stats rows older
// than the cutoff. Unfolded bookings are kept regardless of age, they still
// feed the next restock run.
func (r *GormLedgerRepository) PruneOlderThan(cutoff time.Time) (domain.PruneCounts, error) {
	var counts domain.PruneCounts

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("is_open = ? AND order_date < ?", false, cutoff).
			Delete(&domain.Order{})
		if result.Error != nil {
			return result.Error
		}
		counts.OrdersDeleted = result.RowsAffected

		result = tx.Where("order_id IS NOT NULL AND occurred_at < ?", cutoff).
			Delete(&domain.LedgerEntry{})
		if result.Error != nil {
			return result.Error
		}
		counts.BookingsDeleted = result.RowsAffected

		result = tx.Where("aggregated_at < ?", cutoff).
			Delete(&domain.WeeklyStat{})
		if result.Error != nil {
			return result.Error
		}
		counts.StatsDeleted = result.RowsAffected

		return nil
	})
	return counts, err
}

// GormStatsRepository persists the weekly aggregates
type GormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new stats repository
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// UpsertWeeklyStats writes the rows with upsert-on-(item_id, week_start)
// semantics. Re-aggregating a week overwrites, never accumulates.
func (r *GormStatsRepository) UpsertWeeklyStats(rows []domain.WeeklyStat) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}, {Name: "week_start"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"consumption_total",
			"consumption_max",
			"consumption_stddev",
			"adjustment_total",
			"booking_max",
			"booking_count",
			"aggregated_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *GormStatsRepository) FindWeeklyStats(itemID uint, since time.Time) ([]domain.WeeklyStat, error) {
	query := r.db.Where("week_start >= ?", since).Order("week_start")
	if itemID != 0 {
		query = query.Where("item_id = ?", itemID)
	}

	var rows []domain.WeeklyStat
	err := query.Find(&rows).Error
	return rows, err
}
