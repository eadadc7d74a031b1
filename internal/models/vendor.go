package models

import (
	"time"

	"gorm.io/gorm"
)

type Vendor struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	LogoURL   string `gorm:"column:logo_url"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
