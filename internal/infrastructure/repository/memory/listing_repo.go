package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

type ListingRepository struct {
	store *Store
}

var _ contract.IListingRepository = (*ListingRepository)(nil)

func NewListingRepository(store *Store) *ListingRepository {
	return &ListingRepository{store: store}
}

func copyListing(l entity.Listing) *entity.Listing {
	l.ReviewIDs = cloneStrings(l.ReviewIDs)
	l.ReservationIDs = cloneStrings(l.ReservationIDs)
	return &l
}

func (r *ListingRepository) CreateListing(ctx context.Context, listing *entity.Listing) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("listings.CreateListing"); err != nil {
		return err
	}
	if _, ok := s.listings[listing.ID]; ok {
		return fmt.Errorf("listing %s: %w", listing.ID, entity.ErrConflict)
	}
	if listing.ReviewIDs == nil {
		listing.ReviewIDs = []string{}
	}
	if listing.ReservationIDs == nil {
		listing.ReservationIDs = []string{}
	}
	s.listings[listing.ID] = *copyListing(*listing)
	return nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	l, ok := r.store.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, entity.ErrNotFound)
	}
	return copyListing(l), nil
}

func matchesListing(l *entity.Listing, opts *contract.ListingFilterOptions) bool {
	if opts == nil {
		return true
	}
	if opts.VerifiedOnly && !l.IsVerified {
		return false
	}
	if opts.Unverified && l.IsVerified {
		return false
	}
	if opts.OwnerID != "" && l.OwnerID != opts.OwnerID {
		return false
	}
	if opts.Category != "" && l.Category != opts.Category {
		return false
	}
	if opts.Query != "" && !containsFold(l.Location, opts.Query) && !containsFold(l.Country, opts.Query) {
		return false
	}
	return true
}

func (r *ListingRepository) ListListings(ctx context.Context, opts *contract.ListingFilterOptions) ([]*entity.Listing, int64, error) {
	r.store.mu.Lock()
	if err := r.store.fault("listings.ListListings"); err != nil {
		r.store.mu.Unlock()
		return nil, 0, err
	}
	var matched []*entity.Listing
	for _, l := range r.store.listings {
		if matchesListing(&l, opts) {
			matched = append(matched, copyListing(l))
		}
	}
	r.store.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if opts != nil {
		matched = paginate(matched, opts.Page, opts.PageSize)
	}
	if matched == nil {
		matched = []*entity.Listing{}
	}
	return matched, total, nil
}

func (r *ListingRepository) UpdateListing(ctx context.Context, id string, updates map[string]interface{}) (*entity.Listing, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("listings.UpdateListing"); err != nil {
		return nil, err
	}
	current, ok := s.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, entity.ErrNotFound)
	}
	set := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		set[k] = v
	}
	set["updated_at"] = time.Now()
	var next entity.Listing
	if err := merge(current, set, &next); err != nil {
		return nil, fmt.Errorf("failed to apply listing updates: %w", err)
	}
	s.listings[id] = next
	return copyListing(next), nil
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id string) (int64, error) {
	return r.DeleteListingsByIDs(ctx, []string{id})
}

func (r *ListingRepository) DeleteListingsByIDs(ctx context.Context, ids []string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("listings.DeleteListingsByIDs"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := s.listings[id]; ok {
			delete(s.listings, id)
			n++
		}
	}
	return n, nil
}

func (r *ListingRepository) ListingIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("listings.ListingIDsByOwner"); err != nil {
		return nil, err
	}
	found := make(map[string]struct{})
	for id, l := range s.listings {
		if l.OwnerID == ownerID {
			found[id] = struct{}{}
		}
	}
	return keys(found), nil
}

func (r *ListingRepository) ExistingListingIDs(ctx context.Context, ids []string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := r.store.listings[id]; ok {
			found[id] = struct{}{}
		}
	}
	return keys(found), nil
}

func (r *ListingRepository) CountListings(ctx context.Context, opts *contract.ListingFilterOptions) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var n int64
	for _, l := range r.store.listings {
		if matchesListing(&l, opts) {
			n++
		}
	}
	return n, nil
}

func (r *ListingRepository) referenced(pick func(*entity.Listing) []string) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, l := range r.store.listings {
		for _, id := range pick(&l) {
			found[id] = struct{}{}
		}
	}
	return keys(found)
}

func (r *ListingRepository) ReferencedOwnerIDs(ctx context.Context) ([]string, error) {
	return r.referenced(func(l *entity.Listing) []string { return []string{l.OwnerID} }), nil
}

func (r *ListingRepository) ReferencedReviewIDs(ctx context.Context) ([]string, error) {
	return r.referenced(func(l *entity.Listing) []string { return l.ReviewIDs }), nil
}

func (r *ListingRepository) ReferencedReservationIDs(ctx context.Context) ([]string, error) {
	return r.referenced(func(l *entity.Listing) []string { return l.ReservationIDs }), nil
}

func (r *ListingRepository) AddReviewID(ctx context.Context, listingID, reviewID string) error {
	return r.addID(listingID, "listings.AddReviewID", func(l *entity.Listing) *[]string { return &l.ReviewIDs }, reviewID)
}

func (r *ListingRepository) AddReservationID(ctx context.Context, listingID, reservationID string) error {
	return r.addID(listingID, "listings.AddReservationID", func(l *entity.Listing) *[]string { return &l.ReservationIDs }, reservationID)
}

func (r *ListingRepository) addID(listingID, op string, field func(*entity.Listing) *[]string, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault(op); err != nil {
		return err
	}
	l, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("listing %s: %w", listingID, entity.ErrNotFound)
	}
	ids := field(&l)
	for _, existing := range *ids {
		if existing == id {
			return nil
		}
	}
	*ids = append(cloneStrings(*ids), id)
	s.listings[listingID] = l
	return nil
}

func (r *ListingRepository) PullReviewIDs(ctx context.Context, reviewIDs []string) (int64, error) {
	return r.pullIDs("listings.PullReviewIDs", func(l *entity.Listing) *[]string { return &l.ReviewIDs }, reviewIDs)
}

func (r *ListingRepository) PullReservationIDs(ctx context.Context, reservationIDs []string) (int64, error) {
	return r.pullIDs("listings.PullReservationIDs", func(l *entity.Listing) *[]string { return &l.ReservationIDs }, reservationIDs)
}

// pullIDs reports the number of listings modified, like an UpdateMany with $pull.
func (r *ListingRepository) pullIDs(op string, field func(*entity.Listing) *[]string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault(op); err != nil {
		return 0, err
	}
	drop := toSet(ids)
	var modified int64
	for id, l := range s.listings {
		kept, removed := without(*field(&l), drop)
		if removed == 0 {
			continue
		}
		*field(&l) = kept
		s.listings[id] = l
		modified++
	}
	return modified, nil
}
