package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	DealID    uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	ParentID  *uint     `gorm:"index"`
	Body      string    `gorm:"type:text;not null"`
	Replies   []Comment `gorm:"foreignKey:ParentID"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
