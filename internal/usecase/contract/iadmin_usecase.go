package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// DashboardStats summarises the store for the admin dashboard.
type DashboardStats struct {
	Users                int64 `json:"users"`
	Listings             int64 `json:"listings"`
	PendingVerification  int64 `json:"pending_verification"`
	Reviews              int64 `json:"reviews"`
	Reservations         int64 `json:"reservations"`
	PendingReservations  int64 `json:"pending_reservations"`
	CancelledReservation int64 `json:"cancelled_reservations"`
}

type IAdminUseCase interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int64, error)
	SetUserStatus(ctx context.Context, admin entity.Actor, userID string, status entity.UserStatus) (*entity.User, error)
	SetUserRole(ctx context.Context, admin entity.Actor, userID string, role entity.UserRole) (*entity.User, error)
	DeleteUser(ctx context.Context, admin entity.Actor, userID string) (*entity.CascadeResult, error)
	ListPendingListings(ctx context.Context, page, pageSize int) ([]*entity.Listing, int64, error)
	SetListingVerification(ctx context.Context, listingID string, verified bool) (*entity.Listing, error)
	ListReservations(ctx context.Context, opts *contract.ReservationFilterOptions) ([]*entity.Reservation, int64, error)
	SetReservationStatus(ctx context.Context, admin entity.Actor, reservationID string, status entity.ReservationStatus) (*entity.Reservation, error)
	DeleteReservation(ctx context.Context, reservationID string) (*entity.CascadeResult, error)
	Reconcile(ctx context.Context) (*entity.CascadeResult, error)
}
