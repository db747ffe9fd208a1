package contract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateUser updates an existing user and returns the updated user.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int64, error)
	// DeleteUser removes a user by ID and reports how many documents were removed.
	DeleteUser(ctx context.Context, id string) (int64, error)
	// ExistingUserIDs returns the subset of ids that still exist.
	ExistingUserIDs(ctx context.Context, ids []string) ([]string, error)
	CountUsers(ctx context.Context) (int64, error)
}
