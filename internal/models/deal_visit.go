package models

import "time"

// DealVisit marks that a subscriber has seen a deal. New flips to false once
// the first visit is older than the freshness window.
type DealVisit struct {
	ID        uint `gorm:"primaryKey"`
	DealID    uint `gorm:"not null;uniqueIndex:idx_deal_visits_deal_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_deal_visits_deal_user"`
	New       bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
