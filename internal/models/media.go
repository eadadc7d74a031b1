package models

import (
	"time"

	"gorm.io/datatypes"
)

// DealModelType is the model_type of media attached to deals.
const DealModelType = "deals"

// Media is a file attached to a model under a named collection.
type Media struct {
	ID               uint   `gorm:"primaryKey"`
	ModelType        string `gorm:"not null;index:idx_media_model"`
	ModelID          uint   `gorm:"not null;index:idx_media_model"`
	CollectionName   string `gorm:"not null;index:idx_media_model"`
	FileName         string `gorm:"not null"`
	Path             string `gorm:"not null"`
	MimeType         string
	Size             int64
	FullURL          string            `gorm:"column:full_url;not null"`
	CustomProperties datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Media) TableName() string {
	return "media"
}
