package repository

import (
	"context"
	"fmt"

	"github.com/farellandr/dealhub/internal/deals"
	"github.com/farellandr/dealhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type DealRepository struct {
	DB        *gorm.DB
	validator Validator
}

func NewDealRepository(db *gorm.DB, v Validator) *DealRepository {
	return &DealRepository{
		DB:        db,
		validator: v,
	}
}

func (r *DealRepository) FindDeal(ctx context.Context, id uint) (*models.Deal, error) {
	var deal models.Deal
	found, err := first(r.DB.WithContext(ctx).Where("id = ?", id), &deal)
	if err != nil {
		return nil, fmt.Errorf("find deal %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &deal, nil
}

func (r *DealRepository) FindDealBySlug(ctx context.Context, slug string) (*models.Deal, error) {
	var deal models.Deal
	found, err := first(r.DB.WithContext(ctx).Where("slug = ?", slug), &deal)
	if err != nil {
		return nil, fmt.Errorf("find deal %q: %w", slug, err)
	}
	if !found {
		return nil, nil
	}
	return &deal, nil
}

// FindDealUnscoped also returns soft-deleted deals.
func (r *DealRepository) FindDealUnscoped(ctx context.Context, id uint) (*models.Deal, error) {
	var deal models.Deal
	found, err := first(r.DB.WithContext(ctx).Unscoped().Where("id = ?", id), &deal)
	if err != nil {
		return nil, fmt.Errorf("find deal %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &deal, nil
}

func (r *DealRepository) ListDeals(ctx context.Context, filter deals.ListFilter) ([]models.Deal, int64, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	query := r.DB.WithContext(ctx).Model(&models.Deal{})
	if filter.PowerOnly {
		query = query.Scopes(models.Power)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count deals: %w", err)
	}

	var result []models.Deal
	err := query.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list deals: %w", err)
	}
	return result, total, nil
}

func (r *DealRepository) DealVendorsByVendorOrder(ctx context.Context, dealID uint) ([]models.DealVendor, error) {
	var rows []models.DealVendor
	err := r.DB.WithContext(ctx).
		Preload("Vendor").
		Preload("Item").
		Where("deal_id = ?", dealID).
		Order("vendor_order ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list deal vendors: %w", err)
	}
	return rows, nil
}

func (r *DealRepository) DealVendorsByPrice(ctx context.Context, dealID uint) ([]models.DealVendor, error) {
	var rows []models.DealVendor
	err := r.DB.WithContext(ctx).
		Preload("Item").
		Where("deal_id = ?", dealID).
		Order("price DESC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list deal vendors by price: %w", err)
	}
	return rows, nil
}

func (r *DealRepository) FindItemLink(ctx context.Context, itemID, vendorID uint) (*models.ItemLink, error) {
	var link models.ItemLink
	q := r.DB.WithContext(ctx).Where("item_id = ? AND vendor_id = ?", itemID, vendorID).Order("id ASC")
	found, err := first(q, &link)
	if err != nil {
		return nil, fmt.Errorf("find item link: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &link, nil
}

func (r *DealRepository) ItemQuantities(ctx context.Context, dealID uint) ([]models.DealItemQuantity, error) {
	var rows []models.DealItemQuantity
	if err := r.DB.WithContext(ctx).Where("deal_id = ?", dealID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list item quantities: %w", err)
	}
	return rows, nil
}

func (r *DealRepository) FindMeta(ctx context.Context, dealID uint, title string) (*models.DealMeta, error) {
	var meta models.DealMeta
	q := r.DB.WithContext(ctx).Where("deal_id = ? AND title = ?", dealID, title).Order("id ASC")
	found, err := first(q, &meta)
	if err != nil {
		return nil, fmt.Errorf("find meta: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &meta, nil
}

func (r *DealRepository) AddressesByIDs(ctx context.Context, ids []uint) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	if len(ids) == 0 {
		return addresses, nil
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("find addresses: %w", err)
	}
	return addresses, nil
}

// TopLevelComments returns comments that are not replies, oldest first.
func (r *DealRepository) TopLevelComments(ctx context.Context, dealID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.DB.WithContext(ctx).
		Scopes(models.TopLevelComments).
		Preload("Replies").
		Where("deal_id = ?", dealID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *DealRepository) Create(ctx context.Context, deal *models.Deal) error {
	if err := r.validator.ValidateStruct(deal); err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(deal).Error; err != nil {
		return fmt.Errorf("create deal: %w", err)
	}
	return nil
}

// Update saves the stored columns. The slug is never regenerated.
func (r *DealRepository) Update(ctx context.Context, deal *models.Deal) error {
	if err := r.validator.ValidateStruct(deal); err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Save(deal).Error; err != nil {
		return fmt.Errorf("update deal %d: %w", deal.ID, err)
	}
	return nil
}

// Delete soft-deletes the deal.
func (r *DealRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Deal{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete deal %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return deals.ErrDealNotFound
	}
	return nil
}

func (r *DealRepository) Restore(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).
		Unscoped().
		Model(&models.Deal{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return fmt.Errorf("restore deal %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return deals.ErrDealNotFound
	}
	return nil
}
