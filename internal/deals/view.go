package deals

import (
	"context"
	"errors"
	"time"

	"github.com/farellandr/dealhub/internal/models"
)

// DateLayout is the wire format of every deal timestamp.
const DateLayout = "2006-01-02 15:04:05"

// DealView is the serialized form of a deal.
type DealView struct {
	ID                 uint             `json:"id"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	Subtitle           string           `json:"subtitle"`
	Value              string           `json:"value"`
	Instructions       string           `json:"instructions"`
	MultipleItems      bool             `json:"multiple_items"`
	Sil                bool             `json:"sil"`
	AvailableAddresses []uint           `json:"available_addresses"`
	DealLinks          models.DealLinks `json:"deal_links"`
	PublishedAt        *string          `json:"published_at"`
	EndsAt             *string          `json:"ends_at"`

	PictureURL                string         `json:"picture_url"`
	ItemsAttached             *ItemsAttached `json:"items_attached"`
	IsNew                     bool           `json:"is_new"`
	TagNames                  []string       `json:"tag_names"`
	Color                     string         `json:"color"`
	Description               string         `json:"description"`
	DealPrice                 string         `json:"deal_price"`
	TermsConditions           string         `json:"terms_conditions"`
	Commission                string         `json:"commission"`
	DealResponse              string         `json:"deal_response"`
	DealID                    uint           `json:"deal_id"`
	PriceLow                  string         `json:"price_low"`
	PriceHigh                 string         `json:"price_high"`
	ValidDate                 *string        `json:"valid_date"`
	OldSubscribersCount       string         `json:"old_subscribers_count"`
	MultipleItemsInstructions string         `json:"multiple_items_instructions"`
	TCStatus                  string         `json:"t_c_status"`
}

// BuildView renders the deal for the given viewer. Storage failures abort the
// build. Media and tag failures leave the affected fields empty and are
// returned joined alongside the view.
func (s *Service) BuildView(ctx context.Context, deal *models.Deal, viewer *Viewer) (*DealView, error) {
	s.metrics.ObserveView()

	var degraded []error

	picture, err := s.PictureURL(ctx, deal)
	if err != nil {
		s.logDegraded(deal, err)
		degraded = append(degraded, err)
	}

	items, err := s.ItemsAttached(ctx, deal)
	if err != nil {
		return nil, err
	}

	isNew, err := s.IsNewForViewer(ctx, deal, viewer)
	if err != nil {
		return nil, err
	}

	tags, err := s.TagNames(ctx, deal)
	if err != nil {
		s.logDegraded(deal, err)
		degraded = append(degraded, err)
		tags = []string{}
	}

	instructions, err := s.MultipleItemsInstructions(ctx, deal)
	if err != nil {
		return nil, err
	}

	addresses := append([]uint{}, deal.AvailableAddresses...)
	links := deal.DealLinks
	if links == nil {
		links = models.DealLinks{}
	}

	view := &DealView{
		ID:                 deal.ID,
		Title:              deal.Title,
		Slug:               deal.Slug,
		Subtitle:           deal.Subtitle,
		Value:              FormattedPrice(deal.Value),
		Instructions:       deal.Instructions,
		MultipleItems:      deal.MultipleItems,
		Sil:                deal.Sil,
		AvailableAddresses: addresses,
		DealLinks:          links,
		PublishedAt:        formatDate(deal.PublishedAt),
		EndsAt:             formatDate(deal.EndsAt),

		PictureURL:                picture,
		ItemsAttached:             items,
		IsNew:                     isNew,
		TagNames:                  tags,
		Color:                     deal.Subtitle,
		DealPrice:                 FormattedPrice(deal.Value),
		TermsConditions:           deal.Instructions,
		DealID:                    deal.ID,
		PriceLow:                  RawPrice(deal.Value),
		PriceHigh:                 RawPrice(deal.Value),
		ValidDate:                 formatDate(deal.EndsAt),
		MultipleItemsInstructions: instructions,
	}
	return view, errors.Join(degraded...)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
