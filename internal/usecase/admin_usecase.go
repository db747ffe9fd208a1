package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// AdminUsecase backs the admin dashboard. Callers must have checked the admin role.
type AdminUsecase struct {
	userRepo        contract.IUserRepository
	listingRepo     contract.IListingRepository
	reviewRepo      contract.IReviewRepository
	reservationRepo contract.IReservationRepository
	cascade         usecasecontract.ICascadeUseCase
	logger          usecasecontract.IAppLogger
	listingCache    contract.IListingCache
}

var _ usecasecontract.IAdminUseCase = (*AdminUsecase)(nil)

func NewAdminUsecase(
	userRepo contract.IUserRepository,
	listingRepo contract.IListingRepository,
	reviewRepo contract.IReviewRepository,
	reservationRepo contract.IReservationRepository,
	cascade usecasecontract.ICascadeUseCase,
	logger usecasecontract.IAppLogger,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:        userRepo,
		listingRepo:     listingRepo,
		reviewRepo:      reviewRepo,
		reservationRepo: reservationRepo,
		cascade:         cascade,
		logger:          logger,
	}
}

func (uc *AdminUsecase) SetListingCache(c contract.IListingCache) { uc.listingCache = c }

func (uc *AdminUsecase) Stats(ctx context.Context) (*usecasecontract.DashboardStats, error) {
	var (
		stats usecasecontract.DashboardStats
		err   error
	)
	if stats.Users, err = uc.userRepo.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.Listings, err = uc.listingRepo.CountListings(ctx, nil); err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}
	if stats.PendingVerification, err = uc.listingRepo.CountListings(ctx, &contract.ListingFilterOptions{Unverified: true}); err != nil {
		return nil, fmt.Errorf("count unverified listings: %w", err)
	}
	if stats.Reviews, err = uc.reviewRepo.CountReviews(ctx); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}
	if stats.Reservations, err = uc.reservationRepo.CountReservations(ctx, ""); err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}
	if stats.PendingReservations, err = uc.reservationRepo.CountReservations(ctx, entity.ReservationStatusPending); err != nil {
		return nil, fmt.Errorf("count pending reservations: %w", err)
	}
	if stats.CancelledReservation, err = uc.reservationRepo.CountReservations(ctx, entity.ReservationStatusCancelled); err != nil {
		return nil, fmt.Errorf("count cancelled reservations: %w", err)
	}
	return &stats, nil
}

func (uc *AdminUsecase) ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return uc.userRepo.ListUsers(ctx, page, pageSize)
}

// SetUserStatus blocks or unblocks an account. Admins cannot block themselves.
func (uc *AdminUsecase) SetUserStatus(ctx context.Context, admin entity.Actor, userID string, status entity.UserStatus) (*entity.User, error) {
	if status != entity.UserStatusActive && status != entity.UserStatusBlocked {
		return nil, invalidInput("unknown status %q", status)
	}
	return uc.modifyUser(ctx, admin, userID, func(u *entity.User) { u.Status = status })
}

// SetUserRole promotes or demotes an account. Admins cannot demote themselves.
func (uc *AdminUsecase) SetUserRole(ctx context.Context, admin entity.Actor, userID string, role entity.UserRole) (*entity.User, error) {
	if role != entity.UserRoleAdmin && role != entity.UserRoleUser {
		return nil, invalidInput("unknown role %q", role)
	}
	return uc.modifyUser(ctx, admin, userID, func(u *entity.User) { u.Role = role })
}

func (uc *AdminUsecase) modifyUser(ctx context.Context, admin entity.Actor, userID string, apply func(*entity.User)) (*entity.User, error) {
	if userID == admin.UserID {
		return nil, entity.ErrSelfModification
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	apply(user)
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to update user %s: %v", userID, err)
		return nil, err
	}
	uc.logger.Infof("admin %s changed user %s: role=%s status=%s", admin.UserID, userID, updated.Role, updated.Status)
	return updated, nil
}

// DeleteUser removes the account and everything tied to it.
func (uc *AdminUsecase) DeleteUser(ctx context.Context, admin entity.Actor, userID string) (*entity.CascadeResult, error) {
	result, err := uc.cascade.DeleteUser(ctx, userID, admin.UserID)
	metrics.ObserveCascade("delete_user", result)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) && !errors.Is(err, entity.ErrSelfDeletionForbidden) {
			uc.logger.Errorf("cascade delete of user %s incomplete, re-run to resume: %v", userID, err)
		}
		return result, err
	}
	uc.logger.Infof("user deleted: id=%s by=%s listings=%d reviews=%d reservations=%d resumed=%t",
		userID, admin.UserID, result.ListingsDeleted, result.ReviewsDeleted, result.ReservationsDeleted, result.Resumed)
	return result, nil
}

func (uc *AdminUsecase) ListPendingListings(ctx context.Context, page, pageSize int) ([]*entity.Listing, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return uc.listingRepo.ListListings(ctx, &contract.ListingFilterOptions{Unverified: true, Page: page, PageSize: pageSize})
}

// SetListingVerification publishes or withdraws a listing from the public index.
func (uc *AdminUsecase) SetListingVerification(ctx context.Context, listingID string, verified bool) (*entity.Listing, error) {
	listing, err := uc.listingRepo.UpdateListing(ctx, listingID, map[string]interface{}{"is_verified": verified})
	if err != nil {
		return nil, err
	}
	if uc.listingCache != nil {
		_ = uc.listingCache.InvalidateListing(ctx, listingID)
		_ = uc.listingCache.InvalidateListingPages(ctx)
	}
	return listing, nil
}

func (uc *AdminUsecase) ListReservations(ctx context.Context, opts *contract.ReservationFilterOptions) ([]*entity.Reservation, int64, error) {
	if opts == nil {
		opts = &contract.ReservationFilterOptions{}
	}
	opts.Page, opts.PageSize = normalizePage(opts.Page, opts.PageSize)
	return uc.reservationRepo.ListReservations(ctx, opts)
}

// SetReservationStatus confirms or cancels a reservation. Cancelled reservations are locked.
func (uc *AdminUsecase) SetReservationStatus(ctx context.Context, admin entity.Actor, reservationID string, status entity.ReservationStatus) (*entity.Reservation, error) {
	if !status.IsValid() {
		return nil, invalidInput("unknown reservation status %q", status)
	}
	if status == entity.ReservationStatusCancelled {
		return uc.cascade.CancelReservation(ctx, reservationID, admin.UserID, true)
	}
	return uc.reservationRepo.UpdateReservation(ctx, reservationID, map[string]interface{}{
		"status":      status,
		"is_verified": status == entity.ReservationStatusConfirmed,
	})
}

func (uc *AdminUsecase) DeleteReservation(ctx context.Context, reservationID string) (*entity.CascadeResult, error) {
	result, err := uc.cascade.DeleteReservation(ctx, reservationID)
	metrics.ObserveCascade("delete_reservation", result)
	return result, err
}

// Reconcile runs the orphan sweep over the whole store.
func (uc *AdminUsecase) Reconcile(ctx context.Context) (*entity.CascadeResult, error) {
	result, err := uc.cascade.Reconcile(ctx)
	metrics.ObserveCascade("reconcile", result)
	if err != nil {
		uc.logger.Errorf("reconcile incomplete: %v", err)
		return result, err
	}
	uc.logger.Infof("reconcile finished: affected=%d", result.Affected())
	return result, nil
}
