package deals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/farellandr/dealhub/internal/models"
)

type ItemLinkView struct {
	Color string `json:"color"`
	URL   string `json:"url"`
}

type VendorItems struct {
	VendorName string         `json:"vendor_name"`
	ItemLinks  []ItemLinkView `json:"item_links"`
}

// ItemsAttached groups a deal's item links by vendor name, keeping the order
// in which vendors first appear. It marshals to a JSON object.
type ItemsAttached struct {
	names   []string
	vendors map[string]*VendorItems
}

func newItemsAttached() *ItemsAttached {
	return &ItemsAttached{vendors: make(map[string]*VendorItems)}
}

func (a *ItemsAttached) group(name string) *VendorItems {
	if v, ok := a.vendors[name]; ok {
		return v
	}
	v := &VendorItems{VendorName: name, ItemLinks: []ItemLinkView{}}
	a.vendors[name] = v
	a.names = append(a.names, name)
	return v
}

func (a *ItemsAttached) Len() int {
	return len(a.names)
}

// Names returns vendor names in first-seen order.
func (a *ItemsAttached) Names() []string {
	return append([]string(nil), a.names...)
}

func (a *ItemsAttached) Get(name string) (VendorItems, bool) {
	v, ok := a.vendors[name]
	if !ok {
		return VendorItems{}, false
	}
	return *v, true
}

func (a *ItemsAttached) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range a.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.vendors[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type UniqueItem struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

func (s *Service) ItemsAttached(ctx context.Context, deal *models.Deal) (*ItemsAttached, error) {
	rows, err := s.store.DealVendorsByVendorOrder(ctx, deal.ID)
	if err != nil {
		return nil, s.fail(ErrStorage, "storage", "list deal vendors", err)
	}

	attached := newItemsAttached()
	withLinks := !(deal.MultipleItems && deal.Sil && len(deal.DealLinks) > 0)

	for _, row := range rows {
		if row.Vendor == nil {
			continue
		}
		group := attached.group(row.Vendor.Name)
		if !withLinks {
			continue
		}

		link := ItemLinkView{}
		if row.Item != nil {
			link.Color = row.Item.Color
		}
		itemLink, err := s.store.FindItemLink(ctx, row.ItemID, row.VendorID)
		if err != nil {
			return nil, s.fail(ErrStorage, "storage", "find item link", err)
		}
		if itemLink != nil {
			link.URL = itemLink.LinkURL
		}
		group.ItemLinks = append(group.ItemLinks, link)
	}
	return attached, nil
}

func (s *Service) UniqueItems(ctx context.Context, deal *models.Deal) ([]UniqueItem, error) {
	rows, err := s.store.ItemQuantities(ctx, deal.ID)
	if err != nil {
		return nil, s.fail(ErrStorage, "storage", "list item quantities", err)
	}
	items := make([]UniqueItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, UniqueItem{ItemID: row.ItemID, Quantity: row.Quantity})
	}
	return items, nil
}

// MultipleItemsInstructions describes what is paid per item, most expensive
// item first, then the deal total.
func (s *Service) MultipleItemsInstructions(ctx context.Context, deal *models.Deal) (string, error) {
	if !deal.MultipleItems {
		return "", nil
	}
	rows, err := s.store.DealVendorsByPrice(ctx, deal.ID)
	if err != nil {
		return "", s.fail(ErrStorage, "storage", "list deal vendors by price", err)
	}

	var b strings.Builder
	seen := make(map[uint]bool, len(rows))
	for _, row := range rows {
		if seen[row.ItemID] {
			continue
		}
		seen[row.ItemID] = true

		name := ""
		if row.Item != nil {
			name = row.Item.Name
		}
		fmt.Fprintf(&b, "We are paying $%s for each %s. ", RawPrice(row.Price), name)
	}
	fmt.Fprintf(&b, "$%s in total.", FormattedPrice(deal.Value))
	return b.String(), nil
}
