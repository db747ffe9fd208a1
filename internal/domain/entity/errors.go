package entity

import "errors"

// Error kinds surfaced by the core. Callers match them with errors.Is.
var (
	ErrInvalidDateRange      = errors.New("check-out must be after check-in")
	ErrInvalidPricing        = errors.New("invalid pricing input")
	ErrNotFound              = errors.New("not found")
	ErrSelfDeletionForbidden = errors.New("admins cannot delete their own account")
	ErrSelfModification      = errors.New("admins cannot change their own role or status")
	ErrReservationLocked     = errors.New("reservation is cancelled and can no longer be changed")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserBlocked           = errors.New("account is blocked")
	ErrInvalidGuestCount     = errors.New("invalid guest count")
	ErrListingUnavailable    = errors.New("listing is not open for reservations")
	ErrInvalidInput          = errors.New("invalid input")
)
