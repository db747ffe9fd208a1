package mocks

import (
	"context"
	"errors"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailRegister       bool
	ShouldFailLogin          bool
	ShouldFailGetByID        bool
	ShouldFailUpdateUser     bool
	ShouldFailAuthenticate   bool
	ShouldFailLoginWithOAuth bool
	ShouldBlock              bool

	// Return values
	MockUser         entity.User
	MockSessionToken string

	// Recorded arguments
	LastUpdates map[string]interface{}
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:       "mock-user-id",
			Username: "testuser",
			Email:    "test@example.com",
			Role:     entity.UserRoleUser,
			Status:   entity.UserStatusActive,
		},
		MockSessionToken: "mock_session_token",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, username, email, password, phone, location string) (*entity.User, string, error) {
	if m.ShouldFailRegister {
		return nil, "", errors.Join(errors.New("user creation failed"), entity.ErrConflict)
	}
	user := m.MockUser
	user.Username, user.Email, user.Phone, user.Location = username, email, phone, location
	return &user, m.MockSessionToken, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	if m.ShouldFailLogin {
		return nil, "", entity.ErrInvalidCredentials
	}
	if m.ShouldBlock {
		return nil, "", entity.ErrUserBlocked
	}
	return &m.MockUser, m.MockSessionToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, sessionToken string) (*entity.User, error) {
	if m.ShouldFailAuthenticate || sessionToken != m.MockSessionToken {
		return nil, entity.ErrUnauthorized
	}
	if m.ShouldBlock {
		return nil, entity.ErrUserBlocked
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, email, displayName string) (*entity.User, string, error) {
	if m.ShouldFailLoginWithOAuth {
		return nil, "", errors.New("login with OAuth failed")
	}
	user := m.MockUser
	user.Email = email
	return &user, m.MockSessionToken, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, entity.ErrNotFound
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) GetProfile(ctx context.Context, userID string) (*usecasecontract.UserProfile, error) {
	if m.ShouldFailGetByID {
		return nil, entity.ErrNotFound
	}
	return &usecasecontract.UserProfile{User: &m.MockUser}, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	m.LastUpdates = updates
	if m.ShouldFailUpdateUser {
		return nil, errors.New("update user failed")
	}
	return &m.MockUser, nil
}
