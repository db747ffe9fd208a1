package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

var adminActor = entity.Actor{UserID: "admin", Role: entity.UserRoleAdmin}

func newAdminUsecase(w *world) *AdminUsecase {
	return NewAdminUsecase(w.users, w.listings, w.reviews, w.reservations, w.cascade, nopLogger{})
}

func TestAdminStats(t *testing.T) {
	w := newWorld(t)
	uc := newAdminUsecase(w)
	ctx := context.Background()
	require.NoError(t, w.listings.CreateListing(ctx, &entity.Listing{ID: "draft", OwnerID: "host", Guests: 1}))
	_, err := w.cascade.CancelReservation(ctx, "s3", "guest", false)
	require.NoError(t, err)

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Users)
	assert.Equal(t, int64(3), stats.Listings)
	assert.Equal(t, int64(1), stats.PendingVerification)
	assert.Equal(t, int64(3), stats.Reviews)
	assert.Equal(t, int64(3), stats.Reservations)
	assert.Equal(t, int64(2), stats.PendingReservations)
	assert.Equal(t, int64(1), stats.CancelledReservation)
}

func TestAdminUserManagement(t *testing.T) {
	w := newWorld(t)
	uc := newAdminUsecase(w)
	ctx := context.Background()

	blocked, err := uc.SetUserStatus(ctx, adminActor, "guest", entity.UserStatusBlocked)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked())

	promoted, err := uc.SetUserRole(ctx, adminActor, "host", entity.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleAdmin, promoted.Role)

	_, err = uc.SetUserRole(ctx, adminActor, "admin", entity.UserRoleUser)
	assert.ErrorIs(t, err, entity.ErrSelfModification)
	_, err = uc.SetUserStatus(ctx, adminActor, "admin", entity.UserStatusBlocked)
	assert.ErrorIs(t, err, entity.ErrSelfModification)

	_, err = uc.SetUserStatus(ctx, adminActor, "guest", "suspended")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	_, err = uc.SetUserRole(ctx, adminActor, "ghost", entity.UserRoleAdmin)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	users, total, err := uc.ListUsers(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, users, 2)
}

func TestAdminDeleteUser(t *testing.T) {
	w := newWorld(t)
	uc := newAdminUsecase(w)
	ctx := context.Background()

	_, err := uc.DeleteUser(ctx, adminActor, "admin")
	assert.ErrorIs(t, err, entity.ErrSelfDeletionForbidden)

	res, err := uc.DeleteUser(ctx, adminActor, "other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ListingsDeleted)
	assert.False(t, w.exists(t, "listing", "L2"))
	w.requireConsistent(t)
}

func TestAdminListingVerification(t *testing.T) {
	w := newWorld(t)
	uc := newAdminUsecase(w)
	cache := newFakeListingCache()
	uc.SetListingCache(cache)
	ctx := context.Background()
	require.NoError(t, w.listings.CreateListing(ctx, &entity.Listing{ID: "draft", OwnerID: "host", Guests: 1}))

	pending, total, err := uc.ListPendingListings(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, "draft", pending[0].ID)

	verified, err := uc.SetListingVerification(ctx, "draft", true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, 2, cache.invalidated)

	_, err = uc.SetListingVerification(ctx, "missing", true)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAdminSetReservationStatus(t *testing.T) {
	w := newWorld(t)
	uc := newAdminUsecase(w)
	ctx := context.Background()

	confirmed, err := uc.SetReservationStatus(ctx, adminActor, "s1", entity.ReservationStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, confirmed.Status)
	assert.True(t, confirmed.IsVerified)

	cancelled, err := uc.SetReservationStatus(ctx, adminActor, "s1", entity.ReservationStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusCancelled, cancelled.Status)

	_, err = uc.SetReservationStatus(ctx, adminActor, "s1", entity.ReservationStatusConfirmed)
	assert.ErrorIs(t, err, entity.ErrReservationLocked)
	_, err = uc.SetReservationStatus(ctx, adminActor, "s1", "Archived")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	list, total, err := uc.ListReservations(ctx, &contract.ReservationFilterOptions{Status: entity.ReservationStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "s1", list[0].ID)
}

func TestAdminDeleteReservationAndReconcile(t *testing.T) {
	w := newWorld(t)
	uc := newAdminUsecase(w)
	ctx := context.Background()

	res, err := uc.DeleteReservation(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ReservationsDeleted)

	require.NoError(t, w.listings.AddReservationID(ctx, "L1", "phantom"))
	swept, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept.ReferencesPulled)
	w.requireConsistent(t)
}
