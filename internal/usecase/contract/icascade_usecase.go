package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// ICascadeUseCase keeps references between users, listings, reviews and reservations
// consistent when documents are removed. Callers authorize before invoking it.
//
// Every operation can be re-run after a partial failure and converges to the same state.
type ICascadeUseCase interface {
	DeleteUser(ctx context.Context, userID, actingAdminID string) (*entity.CascadeResult, error)
	DeleteListing(ctx context.Context, listingID string) (*entity.CascadeResult, error)
	DeleteReview(ctx context.Context, reviewID string) (*entity.CascadeResult, error)
	DeleteReservation(ctx context.Context, reservationID string) (*entity.CascadeResult, error)
	CancelReservation(ctx context.Context, reservationID, actorID string, actorIsAdmin bool) (*entity.Reservation, error)
	// Reconcile sweeps the whole store for dangling references.
	Reconcile(ctx context.Context) (*entity.CascadeResult, error)
}
