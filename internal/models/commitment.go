package models

import "time"

// UserCommitment records a subscriber committing to buy a deal.
type UserCommitment struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index"`
	DealID    uint `gorm:"not null;index"`
	Quantity  int  `gorm:"not null;default:1"`
	IsUsed    bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
