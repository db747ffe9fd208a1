package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

const errInternalServer = "internal server error"

// UserUsecase implements the IUserUseCase interface.
type UserUsecase struct {
	userRepo        contract.IUserRepository
	listingRepo     contract.IListingRepository
	reservationRepo contract.IReservationRepository
	hasher          contract.IHasher
	jwtService      JWTService
	logger          usecasecontract.IAppLogger
	validator       usecasecontract.IValidator
	uuidGenerator   contract.IUUIDGenerator
	randomGenerator contract.IRandomGenerator
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	listingRepo contract.IListingRepository,
	reservationRepo contract.IReservationRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	logger usecasecontract.IAppLogger,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	randomgen contract.IRandomGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:        userRepo,
		listingRepo:     listingRepo,
		reservationRepo: reservationRepo,
		hasher:          hasher,
		jwtService:      jwtService,
		logger:          logger,
		validator:       validator,
		uuidGenerator:   uuidGenerator,
		randomGenerator: randomgen,
	}
}

// check if UserUsecase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register creates an account and signs the new user in.
func (uc *UserUsecase) Register(ctx context.Context, username, email, password, phone, location string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := uc.validator.ValidateUsername(username); err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email format", entity.ErrInvalidInput)
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	if phone != "" {
		if err := uc.validator.ValidatePhone(phone); err != nil {
			return nil, "", fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
	}

	if err := uc.ensureAvailable(ctx, "", username, email); err != nil {
		return nil, "", err
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, "", errors.New("failed to process password")
	}

	now := time.Now()
	user := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        phone,
		Location:     location,
		Role:         entity.DefaultRole(),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, "", err
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, "", errors.New("failed to register user")
	}

	token, err := uc.issue(user)
	if err != nil {
		return nil, "", err
	}
	uc.logger.Infof("user registered: id=%s username=%s", user.ID, user.Username)
	return user, token, nil
}

// ensureAvailable fails with ErrConflict when the username or email belongs to another user.
func (uc *UserUsecase) ensureAvailable(ctx context.Context, selfID, username, email string) error {
	if username != "" {
		existing, err := uc.userRepo.GetUserByUsername(ctx, username)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			uc.logger.Errorf("failed to check for existing user by username: %v", err)
			return errors.New(errInternalServer)
		}
		if existing != nil && existing.ID != selfID {
			return fmt.Errorf("username %s: %w", username, entity.ErrConflict)
		}
	}
	if email != "" {
		existing, err := uc.userRepo.GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			uc.logger.Errorf("failed to check for existing user by email: %v", err)
			return errors.New(errInternalServer)
		}
		if existing != nil && existing.ID != selfID {
			return fmt.Errorf("email %s: %w", email, entity.ErrConflict)
		}
	}
	return nil
}

// Login verifies the credentials and returns a session token.
func (uc *UserUsecase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", errors.New(errInternalServer)
	}

	if user.PasswordHash == "" || uc.hasher.ComparePasswordHash(password, user.PasswordHash) != nil {
		return nil, "", entity.ErrInvalidCredentials
	}
	if user.IsBlocked() {
		return nil, "", entity.ErrUserBlocked
	}

	token, err := uc.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate handles user authentication using session tokens.
func (uc *UserUsecase) Authenticate(ctx context.Context, sessionToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseSessionToken(sessionToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session token", entity.ErrUnauthorized)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", entity.ErrUnauthorized)
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if user.IsBlocked() {
		return nil, entity.ErrUserBlocked
	}
	return user, nil
}

// LoginWithOAuth signs in the user owning email, creating an account on first use.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, email, displayName string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, "", fmt.Errorf("%w: provider returned no usable email", entity.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, "", errors.New(errInternalServer)
	}

	if user == nil {
		username, err := uc.oauthUsername(ctx, email, displayName)
		if err != nil {
			return nil, "", err
		}
		now := time.Now()
		user = &entity.User{
			ID:        uc.uuidGenerator.NewUUID(),
			Username:  username,
			Email:     email,
			Role:      entity.DefaultRole(),
			Status:    entity.UserStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.userRepo.CreateUser(ctx, user); err != nil {
			uc.logger.Errorf("failed to create oauth user: %v", err)
			return nil, "", errors.New("failed to register user")
		}
		uc.logger.Infof("oauth user created: id=%s email=%s", user.ID, email)
	}

	if user.IsBlocked() {
		return nil, "", entity.ErrUserBlocked
	}
	token, err := uc.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// oauthUsername derives a free username from the display name or email.
func (uc *UserUsecase) oauthUsername(ctx context.Context, email, displayName string) (string, error) {
	base := strings.ToLower(strings.Join(strings.Fields(displayName), ""))
	if len(base) < 3 {
		base = strings.SplitN(email, "@", 2)[0]
	}
	if len(base) > 20 {
		base = base[:20]
	}
	candidate := base
	for i := 0; i < 5; i++ {
		_, err := uc.userRepo.GetUserByUsername(ctx, candidate)
		if errors.Is(err, entity.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", errors.New(errInternalServer)
		}
		suffix, err := uc.randomGenerator.GenerateRandomToken(4)
		if err != nil {
			return "", err
		}
		candidate = base + "_" + strings.ToLower(suffix)
	}
	return "", fmt.Errorf("username for %s: %w", email, entity.ErrConflict)
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetUserByID(ctx, userID)
}

// GetProfile returns the user with their listings and reservations.
func (uc *UserUsecase) GetProfile(ctx context.Context, userID string) (*usecasecontract.UserProfile, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	listings, _, err := uc.listingRepo.ListListings(ctx, &contract.ListingFilterOptions{OwnerID: userID})
	if err != nil {
		uc.logger.Errorf("failed to load listings for profile %s: %v", userID, err)
		return nil, errors.New(errInternalServer)
	}
	reservations, _, err := uc.reservationRepo.ListReservations(ctx, &contract.ReservationFilterOptions{GuestID: userID})
	if err != nil {
		uc.logger.Errorf("failed to load reservations for profile %s: %v", userID, err)
		return nil, errors.New(errInternalServer)
	}
	return &usecasecontract.UserProfile{User: user, Listings: listings, Reservations: reservations}, nil
}

// UpdateProfile allows a registered user to update their contact details.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for k, v := range filterProfileUpdates(updates) {
		s, ok := v.(string)
		if !ok {
			continue
		}
		switch k {
		case "email":
			s = strings.ToLower(strings.TrimSpace(s))
			if err := uc.validator.ValidateEmail(s); err != nil {
				return nil, fmt.Errorf("%w: invalid email format", entity.ErrInvalidInput)
			}
			if err := uc.ensureAvailable(ctx, userID, "", s); err != nil {
				return nil, err
			}
			user.Email = s
		case "phone":
			if s != "" {
				if err := uc.validator.ValidatePhone(s); err != nil {
					return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
				}
			}
			user.Phone = s
		case "location":
			user.Location = s
		}
	}

	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to update profile for user %s: %v", userID, err)
		return nil, err
	}
	return updated, nil
}

func (uc *UserUsecase) issue(user *entity.User) (string, error) {
	token, err := uc.jwtService.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate session token: %v", err)
		return "", errors.New("failed to generate token")
	}
	return token, nil
}
