package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// ListingInput carries the fields of a new listing. Nil pointers take their defaults.
type ListingInput struct {
	Title          string
	Description    string
	Price          int64
	Location       string
	Country        string
	Image          entity.ListingImage
	Lat            *float64
	Lng            *float64
	Category       string
	BadgesCategory string
	CleaningFee    *int64
	ServiceFeePct  *float64
	Guests         int
	Amenities      entity.Amenities
}

// ListingDetails is a listing with its reviews.
type ListingDetails struct {
	Listing *entity.Listing  `json:"listing"`
	Reviews []*entity.Review `json:"reviews"`
}

type IListingUseCase interface {
	CreateListing(ctx context.Context, actor entity.Actor, input ListingInput) (*entity.Listing, error)
	GetListing(ctx context.Context, viewer entity.Actor, listingID string) (*ListingDetails, error)
	// ListListings returns the public index. Only verified listings are included.
	ListListings(ctx context.Context, page, pageSize int) ([]entity.Listing, int64, error)
	SearchListings(ctx context.Context, query string, page, pageSize int) ([]entity.Listing, int64, error)
	ListOwnerListings(ctx context.Context, ownerID string) ([]*entity.Listing, error)
	UpdateListing(ctx context.Context, actor entity.Actor, listingID string, updates map[string]interface{}) (*entity.Listing, error)
	DeleteListing(ctx context.Context, actor entity.Actor, listingID string) (*entity.CascadeResult, error)
}
