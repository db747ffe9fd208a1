package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

type ReviewUsecase struct {
	reviewRepo    contract.IReviewRepository
	listingRepo   contract.IListingRepository
	cascade       usecasecontract.ICascadeUseCase
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	listingCache  contract.IListingCache
}

var _ usecasecontract.IReviewUseCase = (*ReviewUsecase)(nil)

func NewReviewUsecase(
	reviewRepo contract.IReviewRepository,
	listingRepo contract.IListingRepository,
	cascade usecasecontract.ICascadeUseCase,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:    reviewRepo,
		listingRepo:   listingRepo,
		cascade:       cascade,
		uuidGenerator: uuidGenerator,
		logger:        logger,
	}
}

func (uc *ReviewUsecase) SetListingCache(c contract.IListingCache) { uc.listingCache = c }

// CreateReview stores the review and attaches it to the listing. Unverified
// listings only accept reviews from their owner or an admin.
func (uc *ReviewUsecase) CreateReview(ctx context.Context, actor entity.Actor, listingID string, rating int, comment string) (*entity.Review, error) {
	if actor.UserID == "" {
		return nil, entity.ErrUnauthorized
	}
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 {
		return nil, invalidInput("rating must be between 1 and 5")
	}
	if comment == "" {
		return nil, invalidInput("comment is required")
	}
	listing, err := uc.listingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsVerified && !actor.IsAdmin() && !listing.IsOwnedBy(actor.UserID) {
		return nil, fmt.Errorf("listing %s: %w", listingID, entity.ErrNotFound)
	}

	now := time.Now()
	review := &entity.Review{
		ID:        uc.uuidGenerator.NewUUID(),
		Rating:    rating,
		Comment:   comment,
		AuthorID:  actor.UserID,
		ListingID: listingID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reviewRepo.CreateReview(ctx, review); err != nil {
		uc.logger.Errorf("failed to create review: %v", err)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	if err := uc.listingRepo.AddReviewID(ctx, listingID, review.ID); err != nil {
		// the listing vanished between the lookup and the push
		if _, delErr := uc.reviewRepo.DeleteReview(ctx, review.ID); delErr != nil {
			uc.logger.Errorf("failed to roll back review %s: %v", review.ID, delErr)
		}
		return nil, err
	}
	if uc.listingCache != nil {
		_ = uc.listingCache.InvalidateListing(ctx, listingID)
	}
	return review, nil
}

func (uc *ReviewUsecase) ListReviews(ctx context.Context, listingID string) ([]*entity.Review, error) {
	return uc.reviewRepo.ListReviewsByListing(ctx, listingID)
}

// DeleteReview removes a review. Only its author or an admin may delete it.
func (uc *ReviewUsecase) DeleteReview(ctx context.Context, actor entity.Actor, reviewID string) (*entity.CascadeResult, error) {
	review, err := uc.reviewRepo.GetReviewByID(ctx, reviewID)
	switch {
	case err == nil:
		if !actor.IsAdmin() && review.AuthorID != actor.UserID {
			return nil, entity.ErrUnauthorized
		}
	case errors.Is(err, entity.ErrNotFound) && actor.IsAdmin():
	default:
		return nil, err
	}

	result, err := uc.cascade.DeleteReview(ctx, reviewID)
	metrics.ObserveCascade("delete_review", result)
	return result, err
}
