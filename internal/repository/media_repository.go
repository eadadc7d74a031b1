package repository

import (
	"context"
	"fmt"

	"github.com/farellandr/dealhub/internal/models"
	"gorm.io/gorm"
)

type MediaRepository struct {
	DB *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{
		DB: db,
	}
}

// FirstMedia returns the oldest media of a deal in the given collection.
func (r *MediaRepository) FirstMedia(ctx context.Context, dealID uint, collection string) (*models.Media, error) {
	var media models.Media
	q := r.DB.WithContext(ctx).
		Where("model_type = ? AND model_id = ? AND collection_name = ?", models.DealModelType, dealID, collection).
		Order("id ASC")
	found, err := first(q, &media)
	if err != nil {
		return nil, fmt.Errorf("find media: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &media, nil
}

// ReplacePicture stores media as the deal's only picture and returns the
// rows it replaced so their files can be removed.
func (r *MediaRepository) ReplacePicture(ctx context.Context, media *models.Media) ([]models.Media, error) {
	media.ModelType = models.DealModelType
	media.CollectionName = models.PicturesCollection

	var replaced []models.Media
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := tx.Where("model_type = ? AND model_id = ? AND collection_name = ?",
			models.DealModelType, media.ModelID, models.PicturesCollection)
		if err := scope.Find(&replaced).Error; err != nil {
			return err
		}
		if len(replaced) > 0 {
			ids := make([]uint, len(replaced))
			for i, m := range replaced {
				ids[i] = m.ID
			}
			if err := tx.Delete(&models.Media{}, ids).Error; err != nil {
				return err
			}
		}
		return tx.Create(media).Error
	})
	if err != nil {
		return nil, fmt.Errorf("replace picture: %w", err)
	}
	return replaced, nil
}
