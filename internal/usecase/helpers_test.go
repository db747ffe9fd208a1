package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/repository/memory"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{})   {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warnf(string, ...interface{})    {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{})   {}
func (nopLogger) Fatalf(string, ...interface{})   {}

type seqUUID struct{ n int64 }

func (g *seqUUID) NewUUID() string {
	return fmt.Sprintf("id-%d", atomic.AddInt64(&g.n, 1))
}

// world is a store preloaded with two hosts, a guest and an admin.
//
//	host  owns L1; wrote r2 and booked s2 on L2
//	other owns L2
//	guest wrote r1 on L1 and r3 on L2; booked s1 on L1 and s3 on L2
type world struct {
	store        *memory.Store
	users        *memory.UserRepository
	listings     *memory.ListingRepository
	reviews      *memory.ReviewRepository
	reservations *memory.ReservationRepository
	cascade      *CascadeUsecase
}

func newWorld(t *testing.T) *world {
	t.Helper()
	s := memory.NewStore()
	w := &world{
		store:        s,
		users:        memory.NewUserRepository(s),
		listings:     memory.NewListingRepository(s),
		reviews:      memory.NewReviewRepository(s),
		reservations: memory.NewReservationRepository(s),
	}
	w.cascade = NewCascadeUsecase(w.users, w.listings, w.reviews, w.reservations)

	ctx := context.Background()
	for _, u := range []struct {
		id   string
		role entity.UserRole
	}{{"admin", entity.UserRoleAdmin}, {"host", entity.UserRoleUser}, {"other", entity.UserRoleUser}, {"guest", entity.UserRoleUser}} {
		require.NoError(t, w.users.CreateUser(ctx, &entity.User{
			ID: u.id, Username: u.id, Email: u.id + "@example.com", Role: u.role, Status: entity.UserStatusActive,
		}))
	}
	w.addListing(t, "L1", "host")
	w.addListing(t, "L2", "other")
	w.addReview(t, "r1", "guest", "L1")
	w.addReview(t, "r2", "host", "L2")
	w.addReview(t, "r3", "guest", "L2")
	w.addReservation(t, "s1", "guest", "L1")
	w.addReservation(t, "s2", "host", "L2")
	w.addReservation(t, "s3", "guest", "L2")
	return w
}

func (w *world) addListing(t *testing.T, id, owner string) {
	t.Helper()
	require.NoError(t, w.listings.CreateListing(context.Background(), &entity.Listing{
		ID: id, Title: "Listing " + id, OwnerID: owner, Price: 1000, CleaningFee: 200,
		ServiceFeePct: 3, Guests: 4, Category: "Rooms", IsVerified: true, CreatedAt: time.Now(),
	}))
}

func (w *world) addReview(t *testing.T, id, author, listing string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, w.reviews.CreateReview(ctx, &entity.Review{ID: id, Rating: 4, Comment: "ok", AuthorID: author, ListingID: listing}))
	require.NoError(t, w.listings.AddReviewID(ctx, listing, id))
}

func (w *world) addReservation(t *testing.T, id, guest, listing string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, w.reservations.CreateReservation(ctx, &entity.Reservation{
		ID: id, GuestID: guest, ListingID: listing, Adults: 1, Status: entity.ReservationStatusPending,
		CheckIn: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), CheckOut: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, w.listings.AddReservationID(ctx, listing, id))
}

// requireConsistent fails when any reference points at a missing document.
func (w *world) requireConsistent(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	all, _, err := w.listings.ListListings(ctx, nil)
	require.NoError(t, err)
	for _, l := range all {
		_, err := w.users.GetUserByID(ctx, l.OwnerID)
		require.NoError(t, err, "listing %s has missing owner %s", l.ID, l.OwnerID)
		for _, id := range l.ReviewIDs {
			_, err := w.reviews.GetReviewByID(ctx, id)
			require.NoError(t, err, "listing %s references missing review %s", l.ID, id)
		}
		for _, id := range l.ReservationIDs {
			_, err := w.reservations.GetReservationByID(ctx, id)
			require.NoError(t, err, "listing %s references missing reservation %s", l.ID, id)
		}
	}

	listingRefs, err := w.reviews.ReferencedListingIDs(ctx)
	require.NoError(t, err)
	for _, id := range listingRefs {
		require.True(t, w.exists(t, "listing", id), "review on missing listing %s", id)
	}
	authorRefs, err := w.reviews.ReferencedAuthorIDs(ctx)
	require.NoError(t, err)
	for _, id := range authorRefs {
		require.True(t, w.exists(t, "user", id), "review by missing user %s", id)
	}
	reservations, _, err := w.reservations.ListReservations(ctx, nil)
	require.NoError(t, err)
	for _, r := range reservations {
		_, err := w.listings.GetListingByID(ctx, r.ListingID)
		require.NoError(t, err, "reservation %s on missing listing", r.ID)
		_, err = w.users.GetUserByID(ctx, r.GuestID)
		require.NoError(t, err, "reservation %s by missing guest", r.ID)
	}
}

func (w *world) exists(t *testing.T, kind, id string) bool {
	t.Helper()
	ctx := context.Background()
	var ids []string
	var err error
	switch kind {
	case "user":
		ids, err = w.users.ExistingUserIDs(ctx, []string{id})
	case "listing":
		ids, err = w.listings.ExistingListingIDs(ctx, []string{id})
	case "review":
		ids, err = w.reviews.ExistingReviewIDs(ctx, []string{id})
	case "reservation":
		ids, err = w.reservations.ExistingReservationIDs(ctx, []string{id})
	}
	require.NoError(t, err)
	return len(ids) == 1
}

var _ contract.IUUIDGenerator = (*seqUUID)(nil)

func dependentsOf(listingID string) contract.DependentFilter {
	return contract.DependentFilter{ListingIDs: []string{listingID}}
}
