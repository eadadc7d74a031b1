package deals

import (
	"context"
	"time"

	"github.com/farellandr/dealhub/internal/models"
)

// Viewer is the authenticated subscriber a deal is being rendered for.
type Viewer struct {
	UserID uint
}

// ListFilter pages through active deals. PowerOnly applies the power scope.
type ListFilter struct {
	Page      int
	Limit     int
	PowerOnly bool
}

// Store reads deals and their related rows. Lookups that find nothing return
// nil (or an empty slice) and a nil error.
type Store interface {
	FindDeal(ctx context.Context, id uint) (*models.Deal, error)
	FindDealBySlug(ctx context.Context, slug string) (*models.Deal, error)
	ListDeals(ctx context.Context, filter ListFilter) ([]models.Deal, int64, error)
	// DealVendorsByVendorOrder returns the deal's vendor rows ordered by
	// vendor_order ascending, with Vendor and Item loaded.
	DealVendorsByVendorOrder(ctx context.Context, dealID uint) ([]models.DealVendor, error)
	// DealVendorsByPrice returns the deal's vendor rows ordered by price
	// descending, with Item loaded.
	DealVendorsByPrice(ctx context.Context, dealID uint) ([]models.DealVendor, error)
	FindItemLink(ctx context.Context, itemID, vendorID uint) (*models.ItemLink, error)
	ItemQuantities(ctx context.Context, dealID uint) ([]models.DealItemQuantity, error)
	FindMeta(ctx context.Context, dealID uint, title string) (*models.DealMeta, error)
	AddressesByIDs(ctx context.Context, ids []uint) ([]models.ShippingAddress, error)
}

type VisitStore interface {
	FindVisit(ctx context.Context, dealID, userID uint) (*models.DealVisit, error)
	CreateVisit(ctx context.Context, visit *models.DealVisit) error
	SaveVisit(ctx context.Context, visit *models.DealVisit) error
}

type MediaResolver interface {
	FirstMedia(ctx context.Context, dealID uint, collection string) (*models.Media, error)
}

type TagStore interface {
	TagNames(ctx context.Context, dealID uint) ([]string, error)
}

// VisitPublisher announces visit state changes to other services.
type VisitPublisher interface {
	PublishVisit(ctx context.Context, event VisitEvent) error
}

type VisitEvent struct {
	DealID    uint      `json:"deal_id"`
	UserID    uint      `json:"user_id"`
	New       bool      `json:"new"`
	VisitedAt time.Time `json:"visited_at"`
}
