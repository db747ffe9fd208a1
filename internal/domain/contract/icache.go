package contract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// CachedListingsPage is the cached payload for the public listing index.
type CachedListingsPage struct {
	Listings []entity.Listing `json:"listings"`
	Total    int64            `json:"total"`
}

// IListingCache defines caching operations for listings.
type IListingCache interface {
	// Detail (by id)
	GetListing(ctx context.Context, id string) (*entity.Listing, bool, error)
	SetListing(ctx context.Context, listing *entity.Listing) error
	InvalidateListing(ctx context.Context, id string) error

	// Index pages (key built by usecase)
	GetListingsPage(ctx context.Context, key string) (*CachedListingsPage, bool, error)
	SetListingsPage(ctx context.Context, key string, page *CachedListingsPage) error
	InvalidateListingPages(ctx context.Context) error

	// InvalidateAll drops every cached listing entry.
	InvalidateAll(ctx context.Context) error
}
