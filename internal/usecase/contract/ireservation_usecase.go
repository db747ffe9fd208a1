package usecasecontract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// ReservationInput is a booking request. Any client-side price is not part of it.
type ReservationInput struct {
	ListingID string
	CheckIn   time.Time
	CheckOut  time.Time
	Adults    int
	Children  int
}

type IReservationUseCase interface {
	QuoteReservation(ctx context.Context, listingID string, checkIn, checkOut time.Time) (*entity.PriceBreakdown, error)
	CreateReservation(ctx context.Context, actor entity.Actor, input ReservationInput) (*entity.Reservation, error)
	GetReservation(ctx context.Context, actor entity.Actor, reservationID string) (*entity.Reservation, error)
	ListMyReservations(ctx context.Context, actor entity.Actor, page, pageSize int) ([]*entity.Reservation, int64, error)
	UpdateReservation(ctx context.Context, actor entity.Actor, reservationID string, updates map[string]interface{}) (*entity.Reservation, error)
	CancelReservation(ctx context.Context, actor entity.Actor, reservationID string) (*entity.Reservation, error)
}
