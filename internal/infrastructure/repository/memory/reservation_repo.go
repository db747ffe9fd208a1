package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

type ReservationRepository struct {
	store *Store
}

var _ contract.IReservationRepository = (*ReservationRepository)(nil)

func NewReservationRepository(store *Store) *ReservationRepository {
	return &ReservationRepository{store: store}
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *entity.Reservation) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("reservations.CreateReservation"); err != nil {
		return err
	}
	if _, ok := s.reservations[reservation.ID]; ok {
		return fmt.Errorf("reservation %s: %w", reservation.ID, entity.ErrConflict)
	}
	s.reservations[reservation.ID] = *reservation
	return nil
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, id string) (*entity.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", id, entity.ErrNotFound)
	}
	return &res, nil
}

func (r *ReservationRepository) ListReservations(ctx context.Context, opts *contract.ReservationFilterOptions) ([]*entity.Reservation, int64, error) {
	if opts == nil {
		opts = &contract.ReservationFilterOptions{}
	}
	r.store.mu.RLock()
	matched := []*entity.Reservation{}
	for _, res := range r.store.reservations {
		if opts.GuestID != "" && res.GuestID != opts.GuestID {
			continue
		}
		if opts.ListingID != "" && res.ListingID != opts.ListingID {
			continue
		}
		if opts.Status != "" && res.Status != opts.Status {
			continue
		}
		res := res
		matched = append(matched, &res)
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, opts.Page, opts.PageSize), int64(len(matched)), nil
}

func (r *ReservationRepository) UpdateReservation(ctx context.Context, id string, updates map[string]interface{}) (*entity.Reservation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("reservations.UpdateReservation"); err != nil {
		return nil, err
	}
	current, ok := s.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", id, entity.ErrNotFound)
	}
	if current.IsLocked() {
		return nil, fmt.Errorf("reservation %s: %w", id, entity.ErrReservationLocked)
	}
	set := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		set[k] = v
	}
	set["updated_at"] = time.Now()
	var next entity.Reservation
	if err := merge(current, set, &next); err != nil {
		return nil, fmt.Errorf("failed to apply reservation updates: %w", err)
	}
	s.reservations[id] = next
	return &next, nil
}

func (r *ReservationRepository) DeleteReservation(ctx context.Context, id string) (int64, error) {
	return r.DeleteReservationsByIDs(ctx, []string{id})
}

func (r *ReservationRepository) FindReservationIDs(ctx context.Context, filter contract.DependentFilter) ([]string, error) {
	if filter.IsEmpty() {
		return nil, nil
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("reservations.FindReservationIDs"); err != nil {
		return nil, err
	}
	users, listings := toSet(filter.UserIDs), toSet(filter.ListingIDs)
	found := make(map[string]struct{})
	for id, res := range s.reservations {
		_, byUser := users[res.GuestID]
		_, byListing := listings[res.ListingID]
		if byUser || byListing {
			found[id] = struct{}{}
		}
	}
	return keys(found), nil
}

func (r *ReservationRepository) DeleteReservationsByIDs(ctx context.Context, ids []string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("reservations.DeleteReservationsByIDs"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := s.reservations[id]; ok {
			delete(s.reservations, id)
			n++
		}
	}
	return n, nil
}

func (r *ReservationRepository) ExistingReservationIDs(ctx context.Context, ids []string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := r.store.reservations[id]; ok {
			found[id] = struct{}{}
		}
	}
	return keys(found), nil
}

func (r *ReservationRepository) ReferencedListingIDs(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, res := range r.store.reservations {
		found[res.ListingID] = struct{}{}
	}
	return keys(found), nil
}

func (r *ReservationRepository) ReferencedGuestIDs(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, res := range r.store.reservations {
		found[res.GuestID] = struct{}{}
	}
	return keys(found), nil
}

func (r *ReservationRepository) CountReservations(ctx context.Context, status entity.ReservationStatus) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var n int64
	for _, res := range r.store.reservations {
		if status == "" || res.Status == status {
			n++
		}
	}
	return n, nil
}
