package models

import (
	"time"

	"gorm.io/gorm"
)

type Tag struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;uniqueIndex" json:"name" validate:"required,max=100"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DealTag is the deal/tag join row. Its id records association order, which
// is the order tag names are reported in.
type DealTag struct {
	ID     uint `gorm:"primaryKey"`
	DealID uint `gorm:"not null;uniqueIndex:idx_deal_tag"`
	TagID  uint `gorm:"not null;uniqueIndex:idx_deal_tag"`
	Tag    *Tag
}

func (DealTag) TableName() string {
	return "deal_tag"
}
