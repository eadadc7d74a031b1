package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderDeal struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	DealID    uint            `gorm:"not null;index"`
	UserID    uint            `gorm:"not null;index"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status    string          `gorm:"not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"not null;index"`
	DealID    uint `gorm:"not null;index"`
	ItemID    uint `gorm:"not null"`
	VendorID  *uint
	Quantity  int             `gorm:"not null;default:1"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReceivedItem is logged when an ordered item arrives at the warehouse.
type ReceivedItem struct {
	ID         uint `gorm:"primaryKey"`
	DealID     uint `gorm:"not null;index"`
	ItemID     uint `gorm:"not null"`
	UserID     uint `gorm:"not null;index"`
	Quantity   int  `gorm:"not null;default:1"`
	ReceivedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
