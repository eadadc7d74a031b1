package models

import "time"

type DealMeta struct {
	ID        uint   `gorm:"primaryKey"`
	DealID    uint   `gorm:"not null;index:idx_deal_meta_title"`
	Title     string `gorm:"not null;index:idx_deal_meta_title"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DealMeta) TableName() string {
	return "deal_meta"
}
