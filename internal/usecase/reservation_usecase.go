package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/domain/pricing"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// ReservationUsecase books stays. Every amount it stores comes from the pricing engine.
type ReservationUsecase struct {
	reservationRepo contract.IReservationRepository
	listingRepo     contract.IListingRepository
	cascade         usecasecontract.ICascadeUseCase
	uuidGenerator   contract.IUUIDGenerator
	logger          usecasecontract.IAppLogger
}

var _ usecasecontract.IReservationUseCase = (*ReservationUsecase)(nil)

func NewReservationUsecase(
	reservationRepo contract.IReservationRepository,
	listingRepo contract.IListingRepository,
	cascade usecasecontract.ICascadeUseCase,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *ReservationUsecase {
	return &ReservationUsecase{
		reservationRepo: reservationRepo,
		listingRepo:     listingRepo,
		cascade:         cascade,
		uuidGenerator:   uuidGenerator,
		logger:          logger,
	}
}

func (uc *ReservationUsecase) bookableListing(ctx context.Context, listingID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsVerified {
		return nil, entity.ErrListingUnavailable
	}
	return listing, nil
}

func quote(listing *entity.Listing, checkIn, checkOut time.Time) (entity.PriceBreakdown, error) {
	return pricing.ComputeReservationTotal(checkIn, checkOut, listing.Price, listing.CleaningFee, listing.ServiceFeePct)
}

func checkGuests(listing *entity.Listing, adults, children int) error {
	if adults < 1 || children < 0 {
		return fmt.Errorf("%w: at least one adult is required", entity.ErrInvalidGuestCount)
	}
	if listing.Guests > 0 && adults+children > listing.Guests {
		return fmt.Errorf("%w: listing hosts at most %d guests", entity.ErrInvalidGuestCount, listing.Guests)
	}
	return nil
}

// QuoteReservation previews the price of a stay without booking it.
func (uc *ReservationUsecase) QuoteReservation(ctx context.Context, listingID string, checkIn, checkOut time.Time) (*entity.PriceBreakdown, error) {
	listing, err := uc.bookableListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	breakdown, err := quote(listing, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	metrics.IncPriced("quote")
	return &breakdown, nil
}

// CreateReservation books a verified listing for the actor at the engine's price.
func (uc *ReservationUsecase) CreateReservation(ctx context.Context, actor entity.Actor, input usecasecontract.ReservationInput) (*entity.Reservation, error) {
	if actor.UserID == "" {
		return nil, entity.ErrUnauthorized
	}
	listing, err := uc.bookableListing(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if err := checkGuests(listing, input.Adults, input.Children); err != nil {
		return nil, err
	}
	breakdown, err := quote(listing, input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	metrics.IncPriced("create")

	now := time.Now()
	reservation := &entity.Reservation{
		ID:        uc.uuidGenerator.NewUUID(),
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Price:     breakdown.Total,
		Breakdown: breakdown,
		Adults:    input.Adults,
		Children:  input.Children,
		Status:    entity.ReservationStatusPending,
		GuestID:   actor.UserID,
		ListingID: listing.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reservationRepo.CreateReservation(ctx, reservation); err != nil {
		uc.logger.Errorf("failed to create reservation: %v", err)
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	if err := uc.listingRepo.AddReservationID(ctx, listing.ID, reservation.ID); err != nil {
		if _, delErr := uc.reservationRepo.DeleteReservation(ctx, reservation.ID); delErr != nil {
			uc.logger.Errorf("failed to roll back reservation %s: %v", reservation.ID, delErr)
		}
		return nil, err
	}

	metrics.ObserveReservationTotal(reservation.Price)
	uc.logger.Infof("reservation created: id=%s listing=%s guest=%s total=%d",
		reservation.ID, listing.ID, actor.UserID, reservation.Price)
	return reservation, nil
}

// GetReservation is visible to its guest, the listing's host and admins.
func (uc *ReservationUsecase) GetReservation(ctx context.Context, actor entity.Actor, reservationID string) (*entity.Reservation, error) {
	res, err := uc.reservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || (actor.UserID != "" && res.GuestID == actor.UserID) {
		return res, nil
	}
	listing, err := uc.listingRepo.GetListingByID(ctx, res.ListingID)
	if err == nil && listing.IsOwnedBy(actor.UserID) {
		return res, nil
	}
	return nil, entity.ErrUnauthorized
}

func (uc *ReservationUsecase) ListMyReservations(ctx context.Context, actor entity.Actor, page, pageSize int) ([]*entity.Reservation, int64, error) {
	if actor.UserID == "" {
		return nil, 0, entity.ErrUnauthorized
	}
	page, pageSize = normalizePage(page, pageSize)
	return uc.reservationRepo.ListReservations(ctx, &contract.ReservationFilterOptions{
		GuestID:  actor.UserID,
		Page:     page,
		PageSize: pageSize,
	})
}

// UpdateReservation edits dates or party size and re-prices the stay. Status
// and verification are only writable by admins. Cancelled reservations are locked.
func (uc *ReservationUsecase) UpdateReservation(ctx context.Context, actor entity.Actor, reservationID string, updates map[string]interface{}) (*entity.Reservation, error) {
	res, err := uc.reservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (actor.UserID == "" || res.GuestID != actor.UserID) {
		return nil, entity.ErrUnauthorized
	}
	if res.IsLocked() {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, entity.ErrReservationLocked)
	}

	filtered := FilterReservationUpdates(updates, actor.IsAdmin())
	if err := validateReservationUpdates(filtered); err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return res, nil
	}

	checkIn, checkOut := res.CheckIn, res.CheckOut
	adults, children := res.Adults, res.Children
	if v, ok := filtered["check_in"].(time.Time); ok {
		checkIn = v
	}
	if v, ok := filtered["check_out"].(time.Time); ok {
		checkOut = v
	}
	if v, ok := filtered["adults"].(int); ok {
		adults = v
	}
	if v, ok := filtered["children"].(int); ok {
		children = v
	}

	_, datesChanged := filtered["check_in"]
	if _, ok := filtered["check_out"]; ok {
		datesChanged = true
	}
	_, partyChanged := filtered["adults"]
	if _, ok := filtered["children"]; ok {
		partyChanged = true
	}

	if datesChanged || partyChanged {
		listing, err := uc.listingRepo.GetListingByID(ctx, res.ListingID)
		if err != nil {
			return nil, err
		}
		if err := checkGuests(listing, adults, children); err != nil {
			return nil, err
		}
		if datesChanged {
			breakdown, err := quote(listing, checkIn, checkOut)
			if err != nil {
				return nil, err
			}
			metrics.IncPriced("update")
			filtered["price"] = breakdown.Total
			filtered["breakdown"] = breakdown
		}
	}

	updated, err := uc.reservationRepo.UpdateReservation(ctx, reservationID, filtered)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelReservation soft-deletes the reservation through the cascade manager.
func (uc *ReservationUsecase) CancelReservation(ctx context.Context, actor entity.Actor, reservationID string) (*entity.Reservation, error) {
	res, err := uc.cascade.CancelReservation(ctx, reservationID, actor.UserID, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	uc.logger.Infof("reservation cancelled: id=%s by=%s", reservationID, actor.UserID)
	return res, nil
}

func validateReservationUpdates(updates map[string]interface{}) error {
	for k, v := range updates {
		var bad bool
		switch k {
		case "check_in", "check_out":
			t, ok := v.(time.Time)
			bad = !ok || t.IsZero()
		case "adults":
			n, ok := v.(int)
			bad = !ok || n < 1
		case "children":
			n, ok := v.(int)
			bad = !ok || n < 0
		case "status":
			s, ok := v.(entity.ReservationStatus)
			bad = !ok || !s.IsValid()
		case "is_verified":
			_, ok := v.(bool)
			bad = !ok
		}
		if bad {
			return invalidInput("invalid value for %s", k)
		}
	}
	return nil
}
