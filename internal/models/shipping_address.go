package models

import (
	"time"

	"gorm.io/gorm"
)

type ShippingAddress struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Street     string         `gorm:"not null" json:"street"`
	City       string         `gorm:"not null" json:"city"`
	State      string         `json:"state"`
	PostalCode string         `json:"postal_code"`
	Country    string         `gorm:"not null;default:'US'" json:"country"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
