package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

type UserRepository struct {
	store *Store
}

var _ contract.IUserRepository = (*UserRepository)(nil)

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("users.CreateUser"); err != nil {
		return err
	}
	for _, u := range s.users {
		if u.ID == user.ID || u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user %s: %w", user.Username, entity.ErrConflict)
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.ID == id })
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.Username == username })
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) findOne(match func(*entity.User) bool) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if match(&u) {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user: %w", entity.ErrNotFound)
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return nil, fmt.Errorf("user %s: %w", user.ID, entity.ErrNotFound)
	}
	for _, u := range s.users {
		if u.ID != user.ID && (u.Username == user.Username || strings.EqualFold(u.Email, user.Email)) {
			return nil, fmt.Errorf("user %s: %w", user.Username, entity.ErrConflict)
		}
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	updated := *user
	return &updated, nil
}

func (r *UserRepository) ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int64, error) {
	r.store.mu.RLock()
	all := make([]*entity.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		u := u
		all = append(all, &u)
	}
	r.store.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, page, pageSize), int64(len(all)), nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("users.DeleteUser"); err != nil {
		return 0, err
	}
	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	return 1, nil
}

func (r *UserRepository) ExistingUserIDs(ctx context.Context, ids []string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := r.store.users[id]; ok {
			found[id] = struct{}{}
		}
	}
	return keys(found), nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.users)), nil
}
