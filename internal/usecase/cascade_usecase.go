package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// CascadeUsecase removes users, listings, reviews and reservations without
// leaving dangling references behind.
//
// The store offers no multi-document transactions, so every step is an
// idempotent delete-many or pull. A cascade that fails partway is finished by
// calling the same operation again: when the parent is already gone the
// operation switches to resume mode and sweeps whatever is left.
type CascadeUsecase struct {
	userRepo        contract.IUserRepository
	listingRepo     contract.IListingRepository
	reviewRepo      contract.IReviewRepository
	reservationRepo contract.IReservationRepository
	listingCache    contract.IListingCache
}

var _ usecasecontract.ICascadeUseCase = (*CascadeUsecase)(nil)

func NewCascadeUsecase(
	userRepo contract.IUserRepository,
	listingRepo contract.IListingRepository,
	reviewRepo contract.IReviewRepository,
	reservationRepo contract.IReservationRepository,
) *CascadeUsecase {
	return &CascadeUsecase{
		userRepo:        userRepo,
		listingRepo:     listingRepo,
		reviewRepo:      reviewRepo,
		reservationRepo: reservationRepo,
	}
}

// SetListingCache enables invalidation of cached listings after a cascade.
func (uc *CascadeUsecase) SetListingCache(c contract.IListingCache) { uc.listingCache = c }

// DeleteUser removes the user, every review and reservation written by them
// or attached to the listings they own, and finally those listings.
//
// Listings go last so that an interrupted run leaves every leftover reachable
// from userID, either through authorship or through an owned listing. A
// re-run therefore finishes the job without touching unrelated documents, and
// fails with ErrNotFound once nothing tied to userID remains.
func (uc *CascadeUsecase) DeleteUser(ctx context.Context, userID, actingAdminID string) (*entity.CascadeResult, error) {
	if userID == "" {
		return nil, entity.ErrNotFound
	}
	if userID == actingAdminID {
		return nil, entity.ErrSelfDeletionForbidden
	}

	result := &entity.CascadeResult{}
	if _, err := uc.userRepo.GetUserByID(ctx, userID); err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		result.Resumed = true
	}

	listingIDs, err := uc.listingRepo.ListingIDsByOwner(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("collect listings of user %s: %w", userID, err)
	}

	if !result.Resumed {
		n, err := uc.userRepo.DeleteUser(ctx, userID)
		if err != nil {
			return result, fmt.Errorf("delete user %s: %w", userID, err)
		}
		result.UsersDeleted = n
	}

	if err := uc.purgeDependents(ctx, contract.DependentFilter{UserIDs: []string{userID}, ListingIDs: listingIDs}, result); err != nil {
		return result, err
	}

	n, err := uc.listingRepo.DeleteListingsByIDs(ctx, listingIDs)
	if err != nil {
		return result, fmt.Errorf("delete listings of user %s: %w", userID, err)
	}
	result.ListingsDeleted += n

	if result.Resumed && result.Affected() == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, entity.ErrNotFound)
	}

	uc.invalidate(ctx, result)
	return result, nil
}

// DeleteListing removes the listing together with its reviews and reservations.
// Calling it for a listing that is already gone purges leftovers and succeeds.
func (uc *CascadeUsecase) DeleteListing(ctx context.Context, listingID string) (*entity.CascadeResult, error) {
	result := &entity.CascadeResult{}
	if _, err := uc.listingRepo.GetListingByID(ctx, listingID); err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		result.Resumed = true
	}

	n, err := uc.listingRepo.DeleteListing(ctx, listingID)
	if err != nil {
		return result, fmt.Errorf("delete listing %s: %w", listingID, err)
	}
	result.ListingsDeleted = n

	if err := uc.purgeDependents(ctx, contract.DependentFilter{ListingIDs: []string{listingID}}, result); err != nil {
		return result, err
	}

	uc.invalidate(ctx, result)
	return result, nil
}

// DeleteReview removes the review and detaches it from its listing.
func (uc *CascadeUsecase) DeleteReview(ctx context.Context, reviewID string) (*entity.CascadeResult, error) {
	result := &entity.CascadeResult{}
	n, err := uc.reviewRepo.DeleteReview(ctx, reviewID)
	if err != nil {
		return result, fmt.Errorf("delete review %s: %w", reviewID, err)
	}
	result.ReviewsDeleted = n

	pulled, err := uc.listingRepo.PullReviewIDs(ctx, []string{reviewID})
	if err != nil {
		return result, fmt.Errorf("detach review %s: %w", reviewID, err)
	}
	result.ReferencesPulled = pulled

	if result.Affected() == 0 {
		return nil, fmt.Errorf("review %s: %w", reviewID, entity.ErrNotFound)
	}
	result.Resumed = n == 0
	uc.invalidate(ctx, result)
	return result, nil
}

// DeleteReservation removes the reservation and detaches it from its listing.
func (uc *CascadeUsecase) DeleteReservation(ctx context.Context, reservationID string) (*entity.CascadeResult, error) {
	result := &entity.CascadeResult{}
	n, err := uc.reservationRepo.DeleteReservation(ctx, reservationID)
	if err != nil {
		return result, fmt.Errorf("delete reservation %s: %w", reservationID, err)
	}
	result.ReservationsDeleted = n

	pulled, err := uc.listingRepo.PullReservationIDs(ctx, []string{reservationID})
	if err != nil {
		return result, fmt.Errorf("detach reservation %s: %w", reservationID, err)
	}
	result.ReferencesPulled = pulled

	if result.Affected() == 0 {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, entity.ErrNotFound)
	}
	result.Resumed = n == 0
	uc.invalidate(ctx, result)
	return result, nil
}

// CancelReservation marks the reservation Cancelled. Only its guest or an
// admin may cancel, and a cancelled reservation cannot be cancelled again.
func (uc *CascadeUsecase) CancelReservation(ctx context.Context, reservationID, actorID string, actorIsAdmin bool) (*entity.Reservation, error) {
	res, err := uc.reservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !actorIsAdmin && (actorID == "" || res.GuestID != actorID) {
		return nil, entity.ErrUnauthorized
	}
	if res.IsLocked() {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, entity.ErrReservationLocked)
	}
	return uc.reservationRepo.UpdateReservation(ctx, reservationID, map[string]interface{}{
		"status": entity.ReservationStatusCancelled,
	})
}

// Reconcile removes every dangling reference in the store:
//  1. listings whose owner no longer exists, with their dependents
//  2. reviews and reservations pointing at a missing listing or user
//  3. listing review/reservation ids of documents that no longer exist
func (uc *CascadeUsecase) Reconcile(ctx context.Context) (*entity.CascadeResult, error) {
	result := &entity.CascadeResult{}

	owners, err := uc.listingRepo.ReferencedOwnerIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("scan listing owners: %w", err)
	}
	missingOwners, err := missing(ctx, owners, uc.userRepo.ExistingUserIDs)
	if err != nil {
		return result, fmt.Errorf("check listing owners: %w", err)
	}
	for _, ownerID := range missingOwners {
		ids, err := uc.listingRepo.ListingIDsByOwner(ctx, ownerID)
		if err != nil {
			return result, fmt.Errorf("collect orphaned listings: %w", err)
		}
		n, err := uc.listingRepo.DeleteListingsByIDs(ctx, ids)
		if err != nil {
			return result, fmt.Errorf("delete orphaned listings: %w", err)
		}
		result.ListingsDeleted += n
	}

	if err := uc.sweepReviews(ctx, result); err != nil {
		return result, err
	}
	if err := uc.sweepReservations(ctx, result); err != nil {
		return result, err
	}

	reviewRefs, err := uc.listingRepo.ReferencedReviewIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("scan listing reviews: %w", err)
	}
	staleReviews, err := missing(ctx, reviewRefs, uc.reviewRepo.ExistingReviewIDs)
	if err != nil {
		return result, fmt.Errorf("check listing reviews: %w", err)
	}
	pulled, err := uc.listingRepo.PullReviewIDs(ctx, staleReviews)
	if err != nil {
		return result, fmt.Errorf("pull stale review ids: %w", err)
	}
	result.ReferencesPulled += pulled

	reservationRefs, err := uc.listingRepo.ReferencedReservationIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("scan listing reservations: %w", err)
	}
	staleReservations, err := missing(ctx, reservationRefs, uc.reservationRepo.ExistingReservationIDs)
	if err != nil {
		return result, fmt.Errorf("check listing reservations: %w", err)
	}
	pulled, err = uc.listingRepo.PullReservationIDs(ctx, staleReservations)
	if err != nil {
		return result, fmt.Errorf("pull stale reservation ids: %w", err)
	}
	result.ReferencesPulled += pulled

	uc.invalidate(ctx, result)
	return result, nil
}

func (uc *CascadeUsecase) sweepReviews(ctx context.Context, result *entity.CascadeResult) error {
	listingRefs, err := uc.reviewRepo.ReferencedListingIDs(ctx)
	if err != nil {
		return fmt.Errorf("scan review listings: %w", err)
	}
	missingListings, err := missing(ctx, listingRefs, uc.listingRepo.ExistingListingIDs)
	if err != nil {
		return fmt.Errorf("check review listings: %w", err)
	}
	authorRefs, err := uc.reviewRepo.ReferencedAuthorIDs(ctx)
	if err != nil {
		return fmt.Errorf("scan review authors: %w", err)
	}
	missingAuthors, err := missing(ctx, authorRefs, uc.userRepo.ExistingUserIDs)
	if err != nil {
		return fmt.Errorf("check review authors: %w", err)
	}
	return uc.purgeReviews(ctx, contract.DependentFilter{UserIDs: missingAuthors, ListingIDs: missingListings}, result)
}

func (uc *CascadeUsecase) sweepReservations(ctx context.Context, result *entity.CascadeResult) error {
	listingRefs, err := uc.reservationRepo.ReferencedListingIDs(ctx)
	if err != nil {
		return fmt.Errorf("scan reservation listings: %w", err)
	}
	missingListings, err := missing(ctx, listingRefs, uc.listingRepo.ExistingListingIDs)
	if err != nil {
		return fmt.Errorf("check reservation listings: %w", err)
	}
	guestRefs, err := uc.reservationRepo.ReferencedGuestIDs(ctx)
	if err != nil {
		return fmt.Errorf("scan reservation guests: %w", err)
	}
	missingGuests, err := missing(ctx, guestRefs, uc.userRepo.ExistingUserIDs)
	if err != nil {
		return fmt.Errorf("check reservation guests: %w", err)
	}
	return uc.purgeReservations(ctx, contract.DependentFilter{UserIDs: missingGuests, ListingIDs: missingListings}, result)
}

// purgeDependents pulls the ids of the reviews and reservations matched by
// filter from every listing, then deletes the documents. A failure in between
// leaves the documents matchable by the same filter.
func (uc *CascadeUsecase) purgeDependents(ctx context.Context, filter contract.DependentFilter, result *entity.CascadeResult) error {
	if err := uc.purgeReviews(ctx, filter, result); err != nil {
		return err
	}
	return uc.purgeReservations(ctx, filter, result)
}

func (uc *CascadeUsecase) purgeReviews(ctx context.Context, filter contract.DependentFilter, result *entity.CascadeResult) error {
	if filter.IsEmpty() {
		return nil
	}
	ids, err := uc.reviewRepo.FindReviewIDs(ctx, filter)
	if err != nil {
		return fmt.Errorf("find dependent reviews: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	pulled, err := uc.listingRepo.PullReviewIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("detach dependent reviews: %w", err)
	}
	result.ReferencesPulled += pulled

	n, err := uc.reviewRepo.DeleteReviewsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("delete dependent reviews: %w", err)
	}
	result.ReviewsDeleted += n
	return nil
}

func (uc *CascadeUsecase) purgeReservations(ctx context.Context, filter contract.DependentFilter, result *entity.CascadeResult) error {
	if filter.IsEmpty() {
		return nil
	}
	ids, err := uc.reservationRepo.FindReservationIDs(ctx, filter)
	if err != nil {
		return fmt.Errorf("find dependent reservations: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	pulled, err := uc.listingRepo.PullReservationIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("detach dependent reservations: %w", err)
	}
	result.ReferencesPulled += pulled

	n, err := uc.reservationRepo.DeleteReservationsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("delete dependent reservations: %w", err)
	}
	result.ReservationsDeleted += n
	return nil
}

func (uc *CascadeUsecase) invalidate(ctx context.Context, result *entity.CascadeResult) {
	if uc.listingCache == nil || result.Affected() == 0 {
		return
	}
	_ = uc.listingCache.InvalidateAll(ctx)
}

// missing returns the members of ids that exist() does not report back.
func missing(ctx context.Context, ids []string, exist func(context.Context, []string) ([]string, error)) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := exist(ctx, ids)
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var out []string
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			out = append(out, id)
		}
	}
	return out, nil
}
