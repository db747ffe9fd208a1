package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// UserProfile is the signed-in user together with what they own and booked.
type UserProfile struct {
	User         *entity.User          `json:"user"`
	Listings     []*entity.Listing     `json:"listings"`
	Reservations []*entity.Reservation `json:"reservations"`
}

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, username, email, password, phone, location string) (*entity.User, string, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	// Authenticate resolves a session token to an active user.
	Authenticate(ctx context.Context, sessionToken string) (*entity.User, error)
	LoginWithOAuth(ctx context.Context, email, displayName string) (*entity.User, string, error)
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error)
}
