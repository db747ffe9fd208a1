package contract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

type IReservationRepository interface {
	CreateReservation(ctx context.Context, reservation *entity.Reservation) error
	GetReservationByID(ctx context.Context, id string) (*entity.Reservation, error)
	ListReservations(ctx context.Context, opts *ReservationFilterOptions) ([]*entity.Reservation, int64, error)
	// UpdateReservation applies updates only while the reservation is not Cancelled.
	// It returns entity.ErrReservationLocked when the stored record is Cancelled.
	UpdateReservation(ctx context.Context, id string, updates map[string]interface{}) (*entity.Reservation, error)
	DeleteReservation(ctx context.Context, id string) (int64, error)
	FindReservationIDs(ctx context.Context, filter DependentFilter) ([]string, error)
	DeleteReservationsByIDs(ctx context.Context, ids []string) (int64, error)
	ExistingReservationIDs(ctx context.Context, ids []string) ([]string, error)
	ReferencedListingIDs(ctx context.Context) ([]string, error)
	ReferencedGuestIDs(ctx context.Context) ([]string, error)
	CountReservations(ctx context.Context, status entity.ReservationStatus) (int64, error)
}

// ReservationFilterOptions narrows reservation listings. Empty fields are ignored.
type ReservationFilterOptions struct {
	GuestID   string
	ListingID string
	Status    entity.ReservationStatus
	Page      int
	PageSize  int
}
