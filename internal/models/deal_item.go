package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DealItem struct {
	ID        uint `gorm:"primaryKey"`
	DealID    uint `gorm:"not null;index"`
	ItemID    uint `gorm:"not null;index"`
	ItemOrder int  `gorm:"not null;default:0"`
	Item      *Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DealVendor ties an item of a deal to the vendor selling it and the price
// paid per unit.
type DealVendor struct {
	ID          uint            `gorm:"primaryKey"`
	DealID      uint            `gorm:"not null;index"`
	VendorID    uint            `gorm:"not null;index"`
	ItemID      uint            `gorm:"not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	VendorOrder int             `gorm:"not null;default:0"`
	Vendor      *Vendor
	Item        *Item
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DealItemQuantity struct {
	ID        uint `gorm:"primaryKey"`
	DealID    uint `gorm:"not null;index"`
	ItemID    uint `gorm:"not null"`
	Quantity  int  `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
