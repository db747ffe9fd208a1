package contract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// DependentFilter selects reviews or reservations tied to any of the given users or listings.
// An empty filter matches nothing.
type DependentFilter struct {
	UserIDs    []string
	ListingIDs []string
}

func (f DependentFilter) IsEmpty() bool {
	return len(f.UserIDs) == 0 && len(f.ListingIDs) == 0
}

type IReviewRepository interface {
	CreateReview(ctx context.Context, review *entity.Review) error
	GetReviewByID(ctx context.Context, id string) (*entity.Review, error)
	ListReviewsByListing(ctx context.Context, listingID string) ([]*entity.Review, error)
	DeleteReview(ctx context.Context, id string) (int64, error)
	FindReviewIDs(ctx context.Context, filter DependentFilter) ([]string, error)
	DeleteReviewsByIDs(ctx context.Context, ids []string) (int64, error)
	ExistingReviewIDs(ctx context.Context, ids []string) ([]string, error)
	ReferencedListingIDs(ctx context.Context) ([]string, error)
	ReferencedAuthorIDs(ctx context.Context) ([]string, error)
	CountReviews(ctx context.Context) (int64, error)
}
