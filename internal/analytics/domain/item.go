package domain

import (
	"time"
)

// Item represents one stocked catalog item
type Item struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"not null;index"`
	DemandID         uint       `json:"demand_id" gorm:"not null;index"`
	MinStock         int        `json:"min_stock" gorm:"not null;default:0"`
	MaxStock         int        `json:"max_stock" gorm:"not null;default:0"`
	CurrentQuantity  int        `json:"current_quantity" gorm:"not null;default:0"`
	MaxOrderQuantity int        `json:"max_order_quantity" gorm:"not null;default:0"`
	CurrentExpiry    *time.Time `json:"current_expiry"`
	CheckedAt        *time.Time `json:"checked_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Demand *Demand    `json:"demand,omitempty" gorm:"foreignKey:DemandID"`
	Sizes  []PackSize `json:"sizes,omitempty" gorm:"foreignKey:ItemID"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// OrderSize returns the pack the item is ordered in. When no pack is flagged
// as default, the base pack takes its place.
func (i *Item) OrderSize() *PackSize {
	for idx := range i.Sizes {
		if i.Sizes[idx].IsDefault {
			return &i.Sizes[idx]
		}
	}
	return i.BaseSize()
}

// BaseSize returns the pack with amount 1
func (i *Item) BaseSize() *PackSize {
	for idx := range i.Sizes {
		if i.Sizes[idx].Amount == 1 {
			return &i.Sizes[idx]
		}
	}
	return nil
}

// PackSize is a named multiple of an item's base unit ("box of 12")
type PackSize struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ItemID    uint   `json:"item_id" gorm:"not null;index"`
	Unit      string `json:"unit" gorm:"not null"`
	Amount    int    `json:"amount" gorm:"not null;default:1"`
	IsDefault bool   `json:"is_default" gorm:"not null;default:false"`
}

// TableName specifies the table name
func (PackSize) TableName() string {
	return "pack_sizes"
}

// Demand is the demand category an item belongs to
type Demand struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;uniqueIndex"`
}

// TableName specifies the table name
func (Demand) TableName() string {
	return "demands"
}

// HygieneDemand is the distinguished demand category tracked separately by
// the shift signal detector.
const HygieneDemand = "Hygiene"
