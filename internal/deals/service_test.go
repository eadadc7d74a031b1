package deals

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/farellandr/dealhub/internal/models"
	"github.com/shopspring/decimal"
)

func newTestService(store *mockStore, visits *mockVisits, media *mockMedia, tags *mockTags, pub *mockPublisher, clock *testClock) *Service {
	var publisher VisitPublisher
	if pub != nil {
		publisher = pub
	}
	svc := NewService(store, visits, media, tags, publisher, nil)
	if clock != nil {
		svc.now = clock.Now
	}
	return svc
}

func TestService_PictureURL(t *testing.T) {
	deal := &models.Deal{ID: 7}

	tests := []struct {
		name    string
		media   *mockMedia
		want    string
		wantErr error
	}{
		{
			name: "picture attached",
			media: &mockMedia{media: &models.Media{
				ModelID:        7,
				CollectionName: models.PicturesCollection,
				FullURL:        "https://cdn.example.com/pictures/a.jpg",
			}},
			want: "https://cdn.example.com/pictures/a.jpg",
		},
		{name: "no picture", media: &mockMedia{}, want: ""},
		{name: "resolver failure", media: &mockMedia{err: errBoom}, wantErr: ErrMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockStore{}, newMockVisits(), tt.media, &mockTags{}, nil, nil)
			got, err := svc.PictureURL(context.Background(), deal)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("PictureURL() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PictureURL() returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PictureURL() = %q, want %q", got, tt.want)
			}

			image, _ := svc.Image(context.Background(), deal)
			if image != got {
				t.Errorf("Image() = %q, want %q", image, got)
			}
		})
	}
}

func TestService_ItemsAttached(t *testing.T) {
	acme := &models.Vendor{ID: 1, Name: "Acme"}
	acmeOutlet := &models.Vendor{ID: 3, Name: "Acme"}
	bolt := &models.Vendor{ID: 2, Name: "Bolt"}
	shirt := &models.Item{ID: 10, Name: "Shirt", Color: "red"}
	mug := &models.Item{ID: 11, Name: "Mug", Color: "blue"}

	store := &mockStore{
		vendorRows: []models.DealVendor{
			{DealID: 1, VendorID: 2, ItemID: 10, VendorOrder: 0, Vendor: bolt, Item: shirt},
			{DealID: 1, VendorID: 1, ItemID: 10, VendorOrder: 1, Vendor: acme, Item: shirt},
			{DealID: 1, VendorID: 3, ItemID: 11, VendorOrder: 2, Vendor: acmeOutlet, Item: mug},
		},
		itemLinks: []models.ItemLink{
			{ItemID: 10, VendorID: 1, LinkURL: "https://acme.example.com/shirt"},
			{ItemID: 10, VendorID: 1, LinkURL: "https://acme.example.com/shirt-duplicate"},
			{ItemID: 10, VendorID: 2, LinkURL: "https://bolt.example.com/shirt"},
		},
	}
	svc := newTestService(store, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)

	got, err := svc.ItemsAttached(context.Background(), &models.Deal{ID: 1})
	if err != nil {
		t.Fatalf("ItemsAttached() returned unexpected error: %v", err)
	}

	if want := []string{"Bolt", "Acme"}; !reflect.DeepEqual(got.Names(), want) {
		t.Fatalf("Names() = %v, want %v", got.Names(), want)
	}

	acmeGroup, ok := got.Get("Acme")
	if !ok {
		t.Fatal("Get(Acme) not found")
	}
	wantAcme := []ItemLinkView{
		{Color: "red", URL: "https://acme.example.com/shirt"},
		{Color: "blue", URL: ""},
	}
	if !reflect.DeepEqual(acmeGroup.ItemLinks, wantAcme) {
		t.Errorf("Acme links = %+v, want %+v", acmeGroup.ItemLinks, wantAcme)
	}

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() returned unexpected error: %v", err)
	}
	want := `{"Bolt":{"vendor_name":"Bolt","item_links":[{"color":"red","url":"https://bolt.example.com/shirt"}]},` +
		`"Acme":{"vendor_name":"Acme","item_links":[{"color":"red","url":"https://acme.example.com/shirt"},{"color":"blue","url":""}]}}`
	if string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}
}

func TestService_ItemsAttached_SuppressesLinks(t *testing.T) {
	rows := []models.DealVendor{
		{DealID: 1, VendorID: 1, ItemID: 10, Vendor: &models.Vendor{ID: 1, Name: "Acme"}, Item: &models.Item{ID: 10, Color: "red"}},
	}
	links := models.DealLinks{{"url": "https://example.com"}}

	tests := []struct {
		name      string
		deal      *models.Deal
		wantLinks int
	}{
		{name: "multiple sil with links", deal: &models.Deal{ID: 1, MultipleItems: true, Sil: true, DealLinks: links}, wantLinks: 0},
		{name: "multiple sil without links", deal: &models.Deal{ID: 1, MultipleItems: true, Sil: true}, wantLinks: 1},
		{name: "sil only", deal: &models.Deal{ID: 1, Sil: true, DealLinks: links}, wantLinks: 1},
		{name: "multiple only", deal: &models.Deal{ID: 1, MultipleItems: true, DealLinks: links}, wantLinks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{vendorRows: rows}
			svc := newTestService(store, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)

			got, err := svc.ItemsAttached(context.Background(), tt.deal)
			if err != nil {
				t.Fatalf("ItemsAttached() returned unexpected error: %v", err)
			}
			group, ok := got.Get("Acme")
			if !ok {
				t.Fatal("vendor entry missing")
			}
			if len(group.ItemLinks) != tt.wantLinks {
				t.Errorf("item links = %d, want %d", len(group.ItemLinks), tt.wantLinks)
			}
			if tt.wantLinks == 0 && store.linkLookups != 0 {
				t.Errorf("link lookups = %d, want none", store.linkLookups)
			}
		})
	}
}

func TestService_ItemsAttached_Empty(t *testing.T) {
	svc := newTestService(&mockStore{}, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)

	got, err := svc.ItemsAttached(context.Background(), &models.Deal{ID: 1})
	if err != nil {
		t.Fatalf("ItemsAttached() returned unexpected error: %v", err)
	}
	b, _ := json.Marshal(got)
	if string(b) != "{}" {
		t.Errorf("Marshal() = %s, want {}", b)
	}
}

func TestService_UniqueItems(t *testing.T) {
	store := &mockStore{quantities: []models.DealItemQuantity{
		{DealID: 1, ItemID: 12, Quantity: 2},
		{DealID: 1, ItemID: 4, Quantity: 1},
	}}
	svc := newTestService(store, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)

	got, err := svc.UniqueItems(context.Background(), &models.Deal{ID: 1})
	if err != nil {
		t.Fatalf("UniqueItems() returned unexpected error: %v", err)
	}
	want := []UniqueItem{{ItemID: 12, Quantity: 2}, {ItemID: 4, Quantity: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueItems() = %+v, want %+v", got, want)
	}

	empty, err := newTestService(&mockStore{}, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil).
		UniqueItems(context.Background(), &models.Deal{ID: 2})
	if err != nil {
		t.Fatalf("UniqueItems() returned unexpected error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("UniqueItems() = %#v, want empty slice", empty)
	}
}

func TestService_TagNames(t *testing.T) {
	svc := newTestService(&mockStore{}, newMockVisits(), &mockMedia{}, &mockTags{names: []string{"b", "a"}}, nil, nil)

	got, err := svc.TagNames(context.Background(), &models.Deal{ID: 1})
	if err != nil {
		t.Fatalf("TagNames() returned unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("TagNames() = %v, want [b a]", got)
	}

	svc = newTestService(&mockStore{}, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)
	got, _ = svc.TagNames(context.Background(), &models.Deal{ID: 1})
	if got == nil || len(got) != 0 {
		t.Errorf("TagNames() = %#v, want empty slice", got)
	}

	svc = newTestService(&mockStore{}, newMockVisits(), &mockMedia{}, &mockTags{err: errBoom}, nil, nil)
	if _, err := svc.TagNames(context.Background(), &models.Deal{ID: 1}); !errors.Is(err, ErrTags) {
		t.Errorf("TagNames() error = %v, want ErrTags", err)
	}
}

func TestService_MultipleItemsInstructions(t *testing.T) {
	shirt := &models.Item{ID: 1, Name: "Shirt"}
	mug := &models.Item{ID: 2, Name: "Mug"}
	store := &mockStore{priceRows: []models.DealVendor{
		{ItemID: 1, Price: decimal.NewFromInt(20), Item: shirt},
		{ItemID: 1, Price: decimal.NewFromInt(15), Item: shirt},
		{ItemID: 2, Price: decimal.NewFromInt(10), Item: mug},
	}}
	svc := newTestService(store, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)

	tests := []struct {
		name string
		deal *models.Deal
		want string
	}{
		{
			name: "multiple items",
			deal: &models.Deal{ID: 1, MultipleItems: true, Value: decimal.NewFromInt(35)},
			want: "We are paying $20 for each Shirt. We are paying $10 for each Mug. $35.00 in total.",
		},
		{
			name: "single item deal",
			deal: &models.Deal{ID: 1, Value: decimal.NewFromInt(35)},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.MultipleItemsInstructions(context.Background(), tt.deal)
			if err != nil {
				t.Fatalf("MultipleItemsInstructions() returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MultipleItemsInstructions() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestService_IsNewForViewer(t *testing.T) {
	deal := &models.Deal{ID: 5}
	viewer := &Viewer{UserID: 9}
	clock := &testClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	visits := newMockVisits()
	pub := &mockPublisher{}
	svc := newTestService(&mockStore{}, visits, &mockMedia{}, &mockTags{}, pub, clock)
	ctx := context.Background()

	isNew, err := svc.IsNewForViewer(ctx, deal, nil)
	if err != nil || isNew {
		t.Fatalf("anonymous IsNewForViewer() = %v, %v; want false, nil", isNew, err)
	}
	if visits.creates != 0 || visits.saves != 0 {
		t.Fatalf("anonymous view wrote visits: creates=%d saves=%d", visits.creates, visits.saves)
	}

	isNew, err = svc.IsNewForViewer(ctx, deal, viewer)
	if err != nil || !isNew {
		t.Fatalf("first IsNewForViewer() = %v, %v; want true, nil", isNew, err)
	}
	if visits.creates != 1 {
		t.Fatalf("creates = %d, want 1", visits.creates)
	}

	clock.Advance(23 * time.Hour)
	isNew, err = svc.IsNewForViewer(ctx, deal, viewer)
	if err != nil || !isNew {
		t.Fatalf("fresh IsNewForViewer() = %v, %v; want true, nil", isNew, err)
	}
	if visits.creates != 1 || visits.saves != 0 {
		t.Fatalf("fresh view wrote visits: creates=%d saves=%d", visits.creates, visits.saves)
	}

	clock.Advance(2 * time.Hour)
	isNew, err = svc.IsNewForViewer(ctx, deal, viewer)
	if err != nil || isNew {
		t.Fatalf("stale IsNewForViewer() = %v, %v; want false, nil", isNew, err)
	}
	stored := visits.visits[[2]uint{5, 9}]
	if stored.New {
		t.Error("stale visit still flagged new")
	}
	if visits.saves != 1 {
		t.Errorf("saves = %d, want 1", visits.saves)
	}

	isNew, err = svc.IsNewForViewer(ctx, deal, viewer)
	if err != nil || isNew {
		t.Fatalf("repeated stale IsNewForViewer() = %v, %v; want false, nil", isNew, err)
	}
	if visits.saves != 2 {
		t.Errorf("saves = %d, want 2", visits.saves)
	}

	if len(pub.events) != 2 {
		t.Fatalf("published %d events, want 2", len(pub.events))
	}
	if !pub.events[0].New || pub.events[1].New {
		t.Errorf("events = %+v, want first new then stale", pub.events)
	}
}

func TestService_IsNewForViewer_Errors(t *testing.T) {
	visits := newMockVisits()
	visits.err = errBoom
	svc := newTestService(&mockStore{}, visits, &mockMedia{}, &mockTags{}, nil, nil)

	_, err := svc.IsNewForViewer(context.Background(), &models.Deal{ID: 1}, &Viewer{UserID: 1})
	if !errors.Is(err, ErrStorage) {
		t.Errorf("IsNewForViewer() error = %v, want ErrStorage", err)
	}
}

func TestService_IsNewForViewer_PublishFailureIgnored(t *testing.T) {
	svc := newTestService(&mockStore{}, newMockVisits(), &mockMedia{}, &mockTags{}, &mockPublisher{err: errBoom}, nil)

	isNew, err := svc.IsNewForViewer(context.Background(), &models.Deal{ID: 1}, &Viewer{UserID: 1})
	if err != nil || !isNew {
		t.Errorf("IsNewForViewer() = %v, %v; want true, nil", isNew, err)
	}
}

func TestService_MetaByTitle(t *testing.T) {
	store := &mockStore{meta: []models.DealMeta{
		{DealID: 1, Title: MetaSectionTitle, Value: "<p>Custom</p>"},
		{DealID: 1, Title: MetaInfoHeading, Value: ""},
		{DealID: 1, Title: "footer", Value: "bye"},
	}}
	svc := newTestService(store, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)

	tests := []struct {
		name  string
		deal  uint
		title string
		want  string
	}{
		{name: "stored value wins", deal: 1, title: MetaSectionTitle, want: "<p>Custom</p>"},
		{name: "section title fallback", deal: 2, title: MetaSectionTitle, want: sectionTitleHTML},
		{name: "empty stored value falls back", deal: 1, title: MetaInfoHeading, want: infoHeadingHTML},
		{name: "tn heading fallback", deal: 2, title: MetaInfoHeadingTN, want: infoHeadingHTML},
		{name: "unknown title stored", deal: 1, title: "footer", want: "bye"},
		{name: "unknown title missing", deal: 2, title: "footer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.MetaByTitle(context.Background(), &models.Deal{ID: tt.deal}, tt.title)
			if err != nil {
				t.Fatalf("MetaByTitle() returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MetaByTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}

	if sectionTitleHTML != `<p style="text-align:center;"><span class="text-huge">Thanks for subscribing! Check out the deal details below!</span></p>` {
		t.Errorf("unexpected section title fallback %q", sectionTitleHTML)
	}
}

func TestService_AvailableAddresses(t *testing.T) {
	store := &mockStore{addresses: []models.ShippingAddress{{ID: 3}, {ID: 7}, {ID: 8}}}
	svc := newTestService(store, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)

	got, err := svc.AvailableAddresses(context.Background(), &models.Deal{AvailableAddresses: models.AddressList{3, 7}})
	if err != nil {
		t.Fatalf("AvailableAddresses() returned unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 7 {
		t.Errorf("AvailableAddresses() = %+v, want ids 3 and 7", got)
	}

	got, err = svc.AvailableAddresses(context.Background(), &models.Deal{})
	if err != nil || len(got) != 0 {
		t.Errorf("AvailableAddresses() = %+v, %v; want empty", got, err)
	}
	if store.addressCalls != 1 {
		t.Errorf("address lookups = %d, want 1", store.addressCalls)
	}
}

func TestService_FindDeal(t *testing.T) {
	store := &mockStore{deals: map[uint]*models.Deal{
		4: {ID: 4, Slug: "summer-box"},
	}}
	svc := newTestService(store, newMockVisits(), &mockMedia{}, &mockTags{}, nil, nil)

	tests := []struct {
		name    string
		ref     string
		wantID  uint
		wantErr error
	}{
		{name: "by id", ref: "4", wantID: 4},
		{name: "by slug", ref: "summer-box", wantID: 4},
		{name: "missing id", ref: "99", wantErr: ErrDealNotFound},
		{name: "missing slug", ref: "winter-box", wantErr: ErrDealNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FindDeal(context.Background(), tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FindDeal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindDeal() returned unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("FindDeal() id = %d, want %d", got.ID, tt.wantID)
			}
		})
	}

	store.err = errBoom
	if _, err := svc.FindDeal(context.Background(), "4"); !errors.Is(err, ErrStorage) {
		t.Errorf("FindDeal() error = %v, want ErrStorage", err)
	}
}
