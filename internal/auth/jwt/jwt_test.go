package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	customErrors "github.com/veldt-labs/auth-service/internal/auth/errors"
	"github.com/veldt-labs/auth-service/internal/config"
)

func newIssuer() *tokenIssuer {
	return NewTokenIssuer(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		JWTIssuer:          "auth-service-test",
	})
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	iss := newIssuer()
	uid := uuid.New()

	at, atExp, atJTI, err := iss.GenerateAccessToken(uid)
	require.NoError(t, err)
	require.NotEmpty(t, atJTI)
	require.WithinDuration(t, time.Now().Add(time.Minute), atExp, 5*time.Second)

	claims, err := iss.ValidateAccessToken(at)
	require.NoError(t, err)
	require.Equal(t, uid.String(), claims.Subject)
	require.Equal(t, atJTI, claims.ID)

	rt, rtExp, _, err := iss.GenerateRefreshToken(uid)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), rtExp, 5*time.Second)

	rclaims, err := iss.ValidateRefreshToken(rt)
	require.NoError(t, err)
	require.Equal(t, uid.String(), rclaims.Subject)
}

func TestKindsDoNotCrossValidate(t *testing.T) {
	iss := newIssuer()
	uid := uuid.New()

	at, _, _, err := iss.GenerateAccessToken(uid)
	require.NoError(t, err)
	rt, _, _, err := iss.GenerateRefreshToken(uid)
	require.NoError(t, err)

	_, err = iss.ValidateRefreshToken(at)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)

	_, err = iss.ValidateAccessToken(rt)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}

func TestExpiredTokenDistinctFromForged(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	iss := newIssuer().WithClock(func() time.Time { return past })
	uid := uuid.New()

	rt, _, _, err := iss.GenerateRefreshToken(uid)
	require.NoError(t, err)

	// validate with the real clock
	_, err = newIssuer().ValidateRefreshToken(rt)
	require.ErrorIs(t, err, customErrors.ErrTokenExpired)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)

	_, err = newIssuer().ValidateRefreshToken(rt + "tampered")
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
	require.NotErrorIs(t, err, customErrors.ErrTokenExpired)
}

func TestIssuerMismatchRejected(t *testing.T) {
	iss := newIssuer()
	uid := uuid.New()

	at, _, _, err := iss.GenerateAccessToken(uid)
	require.NoError(t, err)

	other := NewTokenIssuer(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		JWTIssuer:          "someone-else",
	})
	_, err = other.ValidateAccessToken(at)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}

func TestGarbageRejected(t *testing.T) {
	iss := newIssuer()
	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := iss.ValidateAccessToken(raw)
		require.ErrorIs(t, err, customErrors.ErrInvalidToken)
	}
}
