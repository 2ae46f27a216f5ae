package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
	"github.com/lagerkern/replenish/internal/analytics/sizes"
)

// expiryHorizonDays is how far ahead the expiry check looks
const expiryHorizonDays = 21

// NearExpiryItem is one item whose tracked batch expires soon
type NearExpiryItem struct {
	ItemID       uint      `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Quantity     int       `json:"quantity"`
	QuantityText string    `json:"quantity_text"`
	ExpiresAt    time.Time `json:"expires_at"`
	DaysLeft     int       `json:"days_left"`
}

// NearExpiryHandler handles the expiry watch query
type NearExpiryHandler struct {
	catalog domain.CatalogRepository
}

// NewNearExpiryHandler creates a new near expiry handler
func NewNearExpiryHandler(catalog domain.CatalogRepository) *NearExpiryHandler {
	return &NearExpiryHandler{catalog: catalog}
}

// Handle lists the items expiring within the horizon, soonest first
func (h *NearExpiryHandler) Handle() ([]NearExpiryItem, error) {
	now := time.Now()
	before := now.AddDate(0, 0, expiryHorizonDays)

	items, err := h.catalog.FindItemsNearExpiry(before)
	if err != nil {
		return nil, fmt.Errorf("failed to load expiring items: %w", err)
	}

	result := make([]NearExpiryItem, 0, len(items))
	for i := range items {
		item := &items[i]
		if item.CurrentExpiry == nil {
			continue
		}
		daysLeft := int(item.CurrentExpiry.Sub(now).Hours() / 24)
		result = append(result, NearExpiryItem{
			ItemID:       item.ID,
			ItemName:     item.Name,
			Quantity:     item.CurrentQuantity,
			QuantityText: sizes.Resolve(item.Sizes, float64(item.CurrentQuantity)).Text(),
			ExpiresAt:    *item.CurrentExpiry,
			DaysLeft:     daysLeft,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].ExpiresAt.Equal(result[j].ExpiresAt) {
			return result[i].ExpiresAt.Before(result[j].ExpiresAt)
		}
		return strings.ToLower(result[i].ItemName) < strings.ToLower(result[j].ItemName)
	})

	return result, nil
}
