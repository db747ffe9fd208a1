package contract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// IListingRepository provides methods for managing listing data in the database.
type IListingRepository interface {
	CreateListing(ctx context.Context, listing *entity.Listing) error
	GetListingByID(ctx context.Context, id string) (*entity.Listing, error)
	ListListings(ctx context.Context, opts *ListingFilterOptions) ([]*entity.Listing, int64, error)
	UpdateListing(ctx context.Context, id string, updates map[string]interface{}) (*entity.Listing, error)
	DeleteListing(ctx context.Context, id string) (int64, error)
	DeleteListingsByIDs(ctx context.Context, ids []string) (int64, error)
	ListingIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	ExistingListingIDs(ctx context.Context, ids []string) ([]string, error)
	CountListings(ctx context.Context, opts *ListingFilterOptions) (int64, error)

	// Reference scans used by the orphan sweep.
	ReferencedOwnerIDs(ctx context.Context) ([]string, error)
	ReferencedReviewIDs(ctx context.Context) ([]string, error)
	ReferencedReservationIDs(ctx context.Context) ([]string, error)

	AddReviewID(ctx context.Context, listingID, reviewID string) error
	// PullReviewIDs removes the ids from every listing's review collection.
	PullReviewIDs(ctx context.Context, reviewIDs []string) (int64, error)
	AddReservationID(ctx context.Context, listingID, reservationID string) error
	// PullReservationIDs removes the ids from every listing's reservation collection.
	PullReservationIDs(ctx context.Context, reservationIDs []string) (int64, error)
}

// ListingFilterOptions encapsulates filtering and pagination parameters for listing retrieval.
type ListingFilterOptions struct {
	VerifiedOnly bool
	Unverified   bool
	OwnerID      string
	Query        string // case-insensitive substring over location and country
	Category     string
	Page         int
	PageSize     int
}
