package models

import (
	"time"

	"gorm.io/gorm"
)

type Item struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Color     string
	ItemLinks []ItemLink
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// ItemLink is the storefront URL of an item at one vendor.
type ItemLink struct {
	ID        uint   `gorm:"primaryKey"`
	ItemID    uint   `gorm:"not null;index:idx_item_links_item_vendor"`
	VendorID  uint   `gorm:"not null;index:idx_item_links_item_vendor"`
	LinkURL   string `gorm:"column:link_url;not null"`
	Item      *Item
	Vendor    *Vendor
	CreatedAt time.Time
	UpdatedAt time.Time
}
