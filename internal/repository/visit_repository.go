package repository

import (
	"context"
	"fmt"

	"github.com/farellandr/dealhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitRepository struct {
	DB *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{
		DB: db,
	}
}

func (r *VisitRepository) FindVisit(ctx context.Context, dealID, userID uint) (*models.DealVisit, error) {
	var visit models.DealVisit
	found, err := first(r.DB.WithContext(ctx).Where("deal_id = ? AND user_id = ?", dealID, userID), &visit)
	if err != nil {
		return nil, fmt.Errorf("find visit: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &visit, nil
}

// CreateVisit inserts the visit unless one already exists for the same deal
// and user, in which case it is a no-op.
func (r *VisitRepository) CreateVisit(ctx context.Context, visit *models.DealVisit) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "deal_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(visit).Error
	if err != nil {
		return fmt.Errorf("create visit: %w", err)
	}
	return nil
}

func (r *VisitRepository) SaveVisit(ctx context.Context, visit *models.DealVisit) error {
	if err := r.DB.WithContext(ctx).Save(visit).Error; err != nil {
		return fmt.Errorf("save visit: %w", err)
	}
	return nil
}
