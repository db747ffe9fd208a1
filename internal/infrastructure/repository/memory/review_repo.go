package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

type ReviewRepository struct {
	store *Store
}

var _ contract.IReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(store *Store) *ReviewRepository {
	return &ReviewRepository{store: store}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("reviews.CreateReview"); err != nil {
		return err
	}
	if _, ok := s.reviews[review.ID]; ok {
		return fmt.Errorf("review %s: %w", review.ID, entity.ErrConflict)
	}
	s.reviews[review.ID] = *review
	return nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id string) (*entity.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rv, ok := r.store.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %s: %w", id, entity.ErrNotFound)
	}
	return &rv, nil
}

func (r *ReviewRepository) ListReviewsByListing(ctx context.Context, listingID string) ([]*entity.Review, error) {
	r.store.mu.RLock()
	out := []*entity.Review{}
	for _, rv := range r.store.reviews {
		if rv.ListingID == listingID {
			rv := rv
			out = append(out, &rv)
		}
	}
	r.store.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id string) (int64, error) {
	return r.DeleteReviewsByIDs(ctx, []string{id})
}

func (r *ReviewRepository) FindReviewIDs(ctx context.Context, filter contract.DependentFilter) ([]string, error) {
	if filter.IsEmpty() {
		return nil, nil
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("reviews.FindReviewIDs"); err != nil {
		return nil, err
	}
	users, listings := toSet(filter.UserIDs), toSet(filter.ListingIDs)
	found := make(map[string]struct{})
	for id, rv := range s.reviews {
		_, byUser := users[rv.AuthorID]
		_, byListing := listings[rv.ListingID]
		if byUser || byListing {
			found[id] = struct{}{}
		}
	}
	return keys(found), nil
}

func (r *ReviewRepository) DeleteReviewsByIDs(ctx context.Context, ids []string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("reviews.DeleteReviewsByIDs"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := s.reviews[id]; ok {
			delete(s.reviews, id)
			n++
		}
	}
	return n, nil
}

func (r *ReviewRepository) ExistingReviewIDs(ctx context.Context, ids []string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := r.store.reviews[id]; ok {
			found[id] = struct{}{}
		}
	}
	return keys(found), nil
}

func (r *ReviewRepository) ReferencedListingIDs(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, rv := range r.store.reviews {
		found[rv.ListingID] = struct{}{}
	}
	return keys(found), nil
}

func (r *ReviewRepository) ReferencedAuthorIDs(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, rv := range r.store.reviews {
		found[rv.AuthorID] = struct{}{}
	}
	return keys(found), nil
}

func (r *ReviewRepository) CountReviews(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.reviews)), nil
}
