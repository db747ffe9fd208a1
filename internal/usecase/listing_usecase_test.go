package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// fakeListingCache records invalidations and serves whatever was stored.
type fakeListingCache struct {
	mu          sync.Mutex
	listings    map[string]*entity.Listing
	pages       map[string]*contract.CachedListingsPage
	invalidated int
}

func newFakeListingCache() *fakeListingCache {
	return &fakeListingCache{
		listings: make(map[string]*entity.Listing),
		pages:    make(map[string]*contract.CachedListingsPage),
	}
}

func (c *fakeListingCache) GetListing(_ context.Context, id string) (*entity.Listing, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.listings[id]
	return l, ok, nil
}

func (c *fakeListingCache) SetListing(_ context.Context, l *entity.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listings[l.ID] = l
	return nil
}

func (c *fakeListingCache) InvalidateListing(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listings, id)
	c.invalidated++
	return nil
}

func (c *fakeListingCache) GetListingsPage(_ context.Context, key string) (*contract.CachedListingsPage, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[key]
	return p, ok, nil
}

func (c *fakeListingCache) SetListingsPage(_ context.Context, key string, page *contract.CachedListingsPage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = page
	return nil
}

func (c *fakeListingCache) InvalidateListingPages(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]*contract.CachedListingsPage)
	c.invalidated++
	return nil
}

func (c *fakeListingCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	c.listings = make(map[string]*entity.Listing)
	c.mu.Unlock()
	return c.InvalidateListingPages(ctx)
}

type fakeGeocoder struct {
	point *contract.GeoPoint
	err   error
	calls []string
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (*contract.GeoPoint, error) {
	g.calls = append(g.calls, address)
	return g.point, g.err
}

func newListingUsecase(w *world) *ListingUsecase {
	return NewListingUsecase(w.listings, w.reviews, w.cascade, &seqUUID{}, nopLogger{})
}

func validListingInput() usecasecontract.ListingInput {
	return usecasecontract.ListingInput{
		Title:       "Cliffside cabin",
		Description: "Quiet cabin with a view of the valley.",
		Price:       2500,
		Location:    "Manali",
		Country:     "India",
		Category:    "Cabins",
		Guests:      3,
	}
}

func TestCreateListing_Defaults(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)

	l, err := uc.CreateListing(context.Background(), entity.Actor{UserID: "host"}, validListingInput())
	require.NoError(t, err)
	assert.Equal(t, "host", l.OwnerID)
	assert.False(t, l.IsVerified)
	assert.Equal(t, entity.DefaultServiceFeePct, l.ServiceFeePct)
	assert.Zero(t, l.CleaningFee)
	assert.Equal(t, entity.DefaultBadgesCategory, l.BadgesCategory)
	assert.Equal(t, entity.DefaultLatitude, l.Lat)
	assert.Equal(t, entity.DefaultLongitude, l.Lng)
}

func TestCreateListing_Geocodes(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)
	geo := &fakeGeocoder{point: &contract.GeoPoint{Lat: 32.24, Lng: 77.19}}
	uc.SetGeocoder(geo)

	l, err := uc.CreateListing(context.Background(), entity.Actor{UserID: "host"}, validListingInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"Manali, India"}, geo.calls)
	assert.Equal(t, 32.24, l.Lat)
	assert.Equal(t, 77.19, l.Lng)

	geo.err = errors.New("quota exceeded")
	l, err = uc.CreateListing(context.Background(), entity.Actor{UserID: "host"}, validListingInput())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultLatitude, l.Lat)
}

func TestCreateListing_Validation(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)
	negative := int64(-1)
	tooHigh := 101.0

	tests := []struct {
		name   string
		mutate func(*usecasecontract.ListingInput)
	}{
		{"short title", func(in *usecasecontract.ListingInput) { in.Title = "ab" }},
		{"short description", func(in *usecasecontract.ListingInput) { in.Description = "tiny" }},
		{"negative price", func(in *usecasecontract.ListingInput) { in.Price = -5 }},
		{"negative cleaning fee", func(in *usecasecontract.ListingInput) { in.CleaningFee = &negative }},
		{"service fee over 100", func(in *usecasecontract.ListingInput) { in.ServiceFeePct = &tooHigh }},
		{"no guests", func(in *usecasecontract.ListingInput) { in.Guests = 0 }},
		{"unknown category", func(in *usecasecontract.ListingInput) { in.Category = "Castles" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validListingInput()
			tc.mutate(&in)
			_, err := uc.CreateListing(context.Background(), entity.Actor{UserID: "host"}, in)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
		})
	}
}

func TestUpdateListing_OwnerCannotVerify(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)
	ctx := context.Background()
	require.NoError(t, w.listings.CreateListing(ctx, &entity.Listing{ID: "draft", OwnerID: "host", Guests: 1, Category: "Rooms"}))

	updated, err := uc.UpdateListing(ctx, entity.Actor{UserID: "host"}, "draft", map[string]interface{}{
		"title":       "Renamed draft",
		"is_verified": true,
		"owner_id":    "guest",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed draft", updated.Title)
	assert.False(t, updated.IsVerified)
	assert.Equal(t, "host", updated.OwnerID)

	updated, err = uc.UpdateListing(ctx, entity.Actor{UserID: "admin", Role: entity.UserRoleAdmin}, "draft", map[string]interface{}{"is_verified": true})
	require.NoError(t, err)
	assert.True(t, updated.IsVerified)
}

func TestUpdateListing_Rejections(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)
	ctx := context.Background()

	_, err := uc.UpdateListing(ctx, entity.Actor{UserID: "guest"}, "L1", map[string]interface{}{"title": "Mine now"})
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	_, err = uc.UpdateListing(ctx, entity.Actor{UserID: "host"}, "L1", map[string]interface{}{"service_fee_pct": 150.0})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = uc.UpdateListing(ctx, entity.Actor{UserID: "host"}, "missing", map[string]interface{}{"title": "Whatever"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetListing_UnverifiedVisibility(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)
	ctx := context.Background()
	require.NoError(t, w.listings.CreateListing(ctx, &entity.Listing{ID: "draft", OwnerID: "host", Guests: 1}))

	_, err := uc.GetListing(ctx, entity.Actor{}, "draft")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = uc.GetListing(ctx, entity.Actor{UserID: "guest"}, "draft")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = uc.GetListing(ctx, entity.Actor{UserID: "host"}, "draft")
	assert.NoError(t, err)
	_, err = uc.GetListing(ctx, entity.Actor{UserID: "admin", Role: entity.UserRoleAdmin}, "draft")
	assert.NoError(t, err)

	details, err := uc.GetListing(ctx, entity.Actor{}, "L2")
	require.NoError(t, err)
	assert.Len(t, details.Reviews, 2)
}

func TestListListings_VerifiedOnlyAndSearch(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)
	ctx := context.Background()
	require.NoError(t, w.listings.CreateListing(ctx, &entity.Listing{ID: "draft", OwnerID: "host", Guests: 1, Location: "Goa", Country: "India"}))
	_, err := w.listings.UpdateListing(ctx, "L1", map[string]interface{}{"location": "Panaji", "country": "India"})
	require.NoError(t, err)
	_, err = w.listings.UpdateListing(ctx, "L2", map[string]interface{}{"location": "Lisbon", "country": "Portugal"})
	require.NoError(t, err)

	all, total, err := uc.ListListings(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	found, total, err := uc.SearchListings(ctx, "inDIA", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, "L1", found[0].ID)

	found, _, err = uc.SearchListings(ctx, "lis", 1, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "L2", found[0].ID)
}

func TestListListings_UsesCache(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)
	cache := newFakeListingCache()
	uc.SetListingCache(cache)
	ctx := context.Background()

	_, total, err := uc.ListListings(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, cache.pages, 1)

	w.store.FailNext("listings.ListListings", errors.New("should not be reached"))
	_, total, err = uc.ListListings(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = uc.UpdateListing(ctx, entity.Actor{UserID: "host"}, "L1", map[string]interface{}{"title": "Fresh title"})
	require.NoError(t, err)
	assert.Empty(t, cache.pages)
}

func TestDeleteListing_Authorization(t *testing.T) {
	w := newWorld(t)
	uc := newListingUsecase(w)
	ctx := context.Background()

	_, err := uc.DeleteListing(ctx, entity.Actor{UserID: "guest"}, "L1")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
	assert.True(t, w.exists(t, "listing", "L1"))

	res, err := uc.DeleteListing(ctx, entity.Actor{UserID: "host"}, "L1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ReviewsDeleted)
	assert.Equal(t, int64(1), res.ReservationsDeleted)

	_, err = uc.DeleteListing(ctx, entity.Actor{UserID: "host"}, "L1")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	res, err = uc.DeleteListing(ctx, entity.Actor{UserID: "admin", Role: entity.UserRoleAdmin}, "L1")
	require.NoError(t, err)
	assert.Zero(t, res.Affected())
	w.requireConsistent(t)
}
