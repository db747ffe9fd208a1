package usecase

import (
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// JWTService issues and verifies signed session tokens.
type JWTService interface {
	GenerateSessionToken(userID string, role entity.UserRole) (string, error)
	ParseSessionToken(token string) (*entity.Claims, error)
}
