package repository

import (
	"context"
	"fmt"

	"github.com/farellandr/dealhub/internal/models"
	"gorm.io/gorm"
)

type TagRepository struct {
	DB        *gorm.DB
	validator Validator
}

func NewTagRepository(db *gorm.DB, v Validator) *TagRepository {
	return &TagRepository{
		DB:        db,
		validator: v,
	}
}

// TagNames returns the deal's tag names in the order they were attached.
func (r *TagRepository) TagNames(ctx context.Context, dealID uint) ([]string, error) {
	var names []string
	err := r.DB.WithContext(ctx).
		Table("deal_tag").
		Joins("JOIN tags ON tags.id = deal_tag.tag_id AND tags.deleted_at IS NULL").
		Where("deal_tag.deal_id = ?", dealID).
		Order("deal_tag.id ASC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list tag names: %w", err)
	}
	return names, nil
}

// Benefits returns the deal's tags in association order.
func (r *TagRepository) Benefits(ctx context.Context, dealID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.DB.WithContext(ctx).
		Joins("JOIN deal_tag ON deal_tag.tag_id = tags.id").
		Where("deal_tag.deal_id = ?", dealID).
		Order("deal_tag.id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list deal tags: %w", err)
	}
	return tags, nil
}

// SyncDealTags replaces the deal's tags, keeping the order of tagIDs.
func (r *TagRepository) SyncDealTags(ctx context.Context, dealID uint, tagIDs []uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", dealID).Delete(&models.DealTag{}).Error; err != nil {
			return err
		}
		seen := make(map[uint]bool, len(tagIDs))
		for _, tagID := range tagIDs {
			if seen[tagID] {
				continue
			}
			seen[tagID] = true
			if err := tx.Create(&models.DealTag{DealID: dealID, TagID: tagID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sync deal tags: %w", err)
	}
	return nil
}

// DealIDsForTag lists the deals a tag is attached to.
func (r *TagRepository) DealIDsForTag(ctx context.Context, tagID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&models.DealTag{}).Where("tag_id = ?", tagID).Pluck("deal_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list tag deals: %w", err)
	}
	return ids, nil
}

func (r *TagRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) FindTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	found, err := first(r.DB.WithContext(ctx).Where("id = ?", id), &tag)
	if err != nil {
		return nil, fmt.Errorf("find tag %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &tag, nil
}

func (r *TagRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	if err := r.validator.ValidateStruct(tag); err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *TagRepository) UpdateTag(ctx context.Context, tag *models.Tag) error {
	if err := r.validator.ValidateStruct(tag); err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Save(tag).Error; err != nil {
		return fmt.Errorf("update tag %d: %w", tag.ID, err)
	}
	return nil
}

// DeleteTag soft-deletes the tag. Its join rows stay but it stops being reported.
func (r *TagRepository) DeleteTag(ctx context.Context, id uint) (bool, error) {
	result := r.DB.WithContext(ctx).Delete(&models.Tag{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete tag %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
