package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a subscriber. Subscribers are the viewers deal freshness is tracked for.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Email       string `gorm:"unique;not null"`
	Password    string `gorm:"not null"`
	PhoneNumber string
	Deals       []Deal `gorm:"many2many:deal_user;"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
