package deals

import (
	"context"
	"errors"
	"time"

	"github.com/farellandr/dealhub/internal/models"
)

var errBoom = errors.New("boom")

type mockStore struct {
	deals        map[uint]*models.Deal
	vendorRows   []models.DealVendor
	priceRows    []models.DealVendor
	itemLinks    []models.ItemLink
	quantities   []models.DealItemQuantity
	meta         []models.DealMeta
	addresses    []models.ShippingAddress
	err          error
	linkLookups  int
	addressCalls int
}

func (m *mockStore) FindDeal(ctx context.Context, id uint) (*models.Deal, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.deals[id], nil
}

func (m *mockStore) FindDealBySlug(ctx context.Context, slug string) (*models.Deal, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, d := range m.deals {
		if d.Slug == slug {
			return d, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListDeals(ctx context.Context, filter ListFilter) ([]models.Deal, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []models.Deal
	for _, d := range m.deals {
		if filter.PowerOnly && d.Power != 0 {
			continue
		}
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (m *mockStore) DealVendorsByVendorOrder(ctx context.Context, dealID uint) ([]models.DealVendor, error) {
	return m.vendorRows, m.err
}

func (m *mockStore) DealVendorsByPrice(ctx context.Context, dealID uint) ([]models.DealVendor, error) {
	return m.priceRows, m.err
}

func (m *mockStore) FindItemLink(ctx context.Context, itemID, vendorID uint) (*models.ItemLink, error) {
	m.linkLookups++
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.itemLinks {
		if m.itemLinks[i].ItemID == itemID && m.itemLinks[i].VendorID == vendorID {
			return &m.itemLinks[i], nil
		}
	}
	return nil, nil
}

func (m *mockStore) ItemQuantities(ctx context.Context, dealID uint) ([]models.DealItemQuantity, error) {
	return m.quantities, m.err
}

func (m *mockStore) FindMeta(ctx context.Context, dealID uint, title string) (*models.DealMeta, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.meta {
		if m.meta[i].DealID == dealID && m.meta[i].Title == title {
			return &m.meta[i], nil
		}
	}
	return nil, nil
}

func (m *mockStore) AddressesByIDs(ctx context.Context, ids []uint) ([]models.ShippingAddress, error) {
	m.addressCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []models.ShippingAddress
	for _, a := range m.addresses {
		for _, id := range ids {
			if a.ID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

type mockVisits struct {
	visits  map[[2]uint]*models.DealVisit
	creates int
	saves   int
	err     error
}

func newMockVisits() *mockVisits {
	return &mockVisits{visits: make(map[[2]uint]*models.DealVisit)}
}

func (m *mockVisits) FindVisit(ctx context.Context, dealID, userID uint) (*models.DealVisit, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.visits[[2]uint{dealID, userID}]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (m *mockVisits) CreateVisit(ctx context.Context, visit *models.DealVisit) error {
	if m.err != nil {
		return m.err
	}
	m.creates++
	copied := *visit
	m.visits[[2]uint{visit.DealID, visit.UserID}] = &copied
	return nil
}

func (m *mockVisits) SaveVisit(ctx context.Context, visit *models.DealVisit) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	copied := *visit
	m.visits[[2]uint{visit.DealID, visit.UserID}] = &copied
	return nil
}

type mockMedia struct {
	media *models.Media
	err   error
}

func (m *mockMedia) FirstMedia(ctx context.Context, dealID uint, collection string) (*models.Media, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.media == nil || m.media.ModelID != dealID || m.media.CollectionName != collection {
		return nil, nil
	}
	return m.media, nil
}

type mockTags struct {
	names []string
	err   error
}

func (m *mockTags) TagNames(ctx context.Context, dealID uint) ([]string, error) {
	return m.names, m.err
}

type mockPublisher struct {
	events []VisitEvent
	err    error
}

func (m *mockPublisher) PublishVisit(ctx context.Context, event VisitEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
