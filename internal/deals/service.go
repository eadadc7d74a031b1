package deals

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/farellandr/dealhub/internal/metrics"
	"github.com/farellandr/dealhub/internal/models"
)

// Service derives the computed attributes of a deal from its collaborators.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	store     Store
	visits    VisitStore
	media     MediaResolver
	tags      TagStore
	publisher VisitPublisher
	metrics   *metrics.DealMetrics
	now       func() time.Time
}

// NewService wires the accessor layer. publisher and m may be nil.
func NewService(store Store, visits VisitStore, media MediaResolver, tags TagStore, publisher VisitPublisher, m *metrics.DealMetrics) *Service {
	return &Service{
		store:     store,
		visits:    visits,
		media:     media,
		tags:      tags,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *Service) fail(kind error, label, op string, err error) error {
	s.metrics.ObserveError(label)
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}

// FindDeal resolves a deal by numeric id or by slug.
func (s *Service) FindDeal(ctx context.Context, ref string) (*models.Deal, error) {
	var (
		deal *models.Deal
		err  error
	)
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		deal, err = s.store.FindDeal(ctx, uint(id))
	} else {
		deal, err = s.store.FindDealBySlug(ctx, ref)
	}
	if err != nil {
		return nil, s.fail(ErrStorage, "storage", "find deal", err)
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return deal, nil
}

func (s *Service) ListDeals(ctx context.Context, filter ListFilter) ([]models.Deal, int64, error) {
	deals, total, err := s.store.ListDeals(ctx, filter)
	if err != nil {
		return nil, 0, s.fail(ErrStorage, "storage", "list deals", err)
	}
	return deals, total, nil
}

// PictureURL returns the URL of the deal's picture, or "" when it has none.
func (s *Service) PictureURL(ctx context.Context, deal *models.Deal) (string, error) {
	media, err := s.media.FirstMedia(ctx, deal.ID, models.PicturesCollection)
	if err != nil {
		return "", s.fail(ErrMedia, "media", "first media", err)
	}
	if media == nil {
		return "", nil
	}
	return media.FullURL, nil
}

// Image is an alias of PictureURL.
func (s *Service) Image(ctx context.Context, deal *models.Deal) (string, error) {
	return s.PictureURL(ctx, deal)
}

func (s *Service) TagNames(ctx context.Context, deal *models.Deal) ([]string, error) {
	names, err := s.tags.TagNames(ctx, deal.ID)
	if err != nil {
		return nil, s.fail(ErrTags, "tags", "tag names", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// AvailableAddresses loads the shipping addresses listed on the deal.
func (s *Service) AvailableAddresses(ctx context.Context, deal *models.Deal) ([]models.ShippingAddress, error) {
	if len(deal.AvailableAddresses) == 0 {
		return []models.ShippingAddress{}, nil
	}
	addresses, err := s.store.AddressesByIDs(ctx, deal.AvailableAddresses)
	if err != nil {
		return nil, s.fail(ErrStorage, "storage", "find addresses", err)
	}
	if addresses == nil {
		addresses = []models.ShippingAddress{}
	}
	return addresses, nil
}

func (s *Service) logDegraded(deal *models.Deal, err error) {
	slog.Warn("deal view degraded", "deal_id", deal.ID, "error", err)
}
