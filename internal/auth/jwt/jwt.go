package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AccessClaims struct {
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the two token kinds. Access and refresh
// tokens are signed with independent secrets, so leaking one secret never
// lets an attacker forge the other kind.
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID) (token string, exp time.Time, jti string, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, exp time.Time, jti string, err error)
	ValidateAccessToken(raw string) (AccessClaims, error)
	ValidateRefreshToken(raw string) (RefreshClaims, error)
}
