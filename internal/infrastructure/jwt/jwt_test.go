package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(NewJWTManager("test-secret", time.Hour))

	token, err := svc.GenerateSessionToken("user-1", entity.UserRoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.UserRoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.SessionID)
}

func TestVerifyToken_Rejects(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)
	good, err := mgr.GenerateSessionToken("sid", "user-1", "user")
	require.NoError(t, err)

	_, err = NewJWTManager("other-secret", time.Hour).VerifyToken(good)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong key")

	_, err = mgr.VerifyToken(good + "x")
	assert.ErrorIs(t, err, ErrInvalidToken, "tampered")

	expired := NewJWTManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateSessionToken("sid", "user-1", "user")
	require.NoError(t, err)
	_, err = mgr.VerifyToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, &SessionClaims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "user-1", Issuer: issuer, ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = mgr.VerifyToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")
}
