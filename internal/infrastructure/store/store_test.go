package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/cache"
)

// testStore connects to REDIS_TEST_URL and skips when it is unset or unreachable.
func testStore(t *testing.T) *ListingCacheStore {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	rdb, err := cache.NewRedisFromURL(context.Background(), url)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close(rdb) })
	s := NewListingCacheStore(rdb, time.Minute)
	require.NoError(t, s.InvalidateAll(context.Background()))
	return s
}

func TestListingCacheStore_Detail(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, found, err := s.GetListing(ctx, "L1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SetListing(ctx, &entity.Listing{ID: "L1", Title: "Loft", Price: 1000, IsVerified: true}))
	got, found, err := s.GetListing(ctx, "L1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Loft", got.Title)
	assert.Equal(t, int64(1000), got.Price)

	require.NoError(t, s.InvalidateListing(ctx, "L1"))
	_, found, err = s.GetListing(ctx, "L1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListingCacheStore_PagesAndInvalidateAll(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	page := &contract.CachedListingsPage{Listings: []entity.Listing{{ID: "L1"}, {ID: "L2"}}, Total: 2}
	require.NoError(t, s.SetListingsPage(ctx, "page=1:size=12:q=", page))
	require.NoError(t, s.SetListing(ctx, &entity.Listing{ID: "L1"}))

	got, found, err := s.GetListingsPage(ctx, "page=1:size=12:q=")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(2), got.Total)
	assert.Len(t, got.Listings, 2)

	require.NoError(t, s.InvalidateListingPages(ctx))
	_, found, _ = s.GetListingsPage(ctx, "page=1:size=12:q=")
	assert.False(t, found)
	_, found, _ = s.GetListing(ctx, "L1")
	assert.True(t, found, "page invalidation keeps details")

	require.NoError(t, s.InvalidateAll(ctx))
	_, found, _ = s.GetListing(ctx, "L1")
	assert.False(t, found)
}

func TestNewListingCacheStore_DefaultTTL(t *testing.T) {
	s := NewListingCacheStore(nil, 0)
	assert.Equal(t, 10*time.Minute, s.detailTTL)
	assert.Equal(t, 5*time.Minute, s.listTTL)
}
