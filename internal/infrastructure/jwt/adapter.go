package jwt

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

// GenerateSessionToken issues a token for a fresh session of the user.
func (a *JWTServiceAdapter) GenerateSessionToken(userID string, role entity.UserRole) (string, error) {
	return a.mgr.GenerateSessionToken(uuid.New().String(), userID, string(role))
}

// ParseSessionToken validates a session token and returns Claims.
func (a *JWTServiceAdapter) ParseSessionToken(tokenStr string) (*entity.Claims, error) {
	customClaims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}
	return &entity.Claims{
		SessionID:        customClaims.ID,
		UserID:           customClaims.Subject,
		Role:             entity.UserRole(customClaims.Role),
		RegisteredClaims: customClaims.RegisteredClaims,
	}, nil
}
