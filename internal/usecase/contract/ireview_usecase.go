package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

type IReviewUseCase interface {
	CreateReview(ctx context.Context, actor entity.Actor, listingID string, rating int, comment string) (*entity.Review, error)
	ListReviews(ctx context.Context, listingID string) ([]*entity.Review, error)
	DeleteReview(ctx context.Context, actor entity.Actor, reviewID string) (*entity.CascadeResult, error)
}
