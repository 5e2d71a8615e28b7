package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/veldt-labs/auth-service/internal/auth/errors"
	"github.com/veldt-labs/auth-service/internal/config"
)

type tokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

func NewTokenIssuer(cfg *config.Config) *tokenIssuer {
	return &tokenIssuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.JWTIssuer,
		now:           time.Now,
	}
}

// WithClock overrides the time source. Tests use it to mint already-expired
// tokens without sleeping.
func (t *tokenIssuer) WithClock(now func() time.Time) *tokenIssuer {
	t.now = now
	return t
}

func (t *tokenIssuer) GenerateAccessToken(userID uuid.UUID) (string, time.Time, string, error) {
	return t.generate(userID, t.accessSecret, t.accessTTL)
}

func (t *tokenIssuer) GenerateRefreshToken(userID uuid.UUID) (string, time.Time, string, error) {
	return t.generate(userID, t.refreshSecret, t.refreshTTL)
}

func (t *tokenIssuer) generate(userID uuid.UUID, secret []byte, ttl time.Duration) (string, time.Time, string, error) {
	jti := uuid.NewString()
	now := t.now()

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        jti,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign token")
	}
	return signed, claims.ExpiresAt.Time, jti, nil
}

func (t *tokenIssuer) ValidateAccessToken(raw string) (AccessClaims, error) {
	claims := AccessClaims{}
	if err := t.validate(raw, &claims, t.accessSecret); err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

func (t *tokenIssuer) ValidateRefreshToken(raw string) (RefreshClaims, error) {
	claims := RefreshClaims{}
	if err := t.validate(raw, &claims, t.refreshSecret); err != nil {
		return RefreshClaims{}, err
	}
	return claims, nil
}

func (t *tokenIssuer) validate(raw string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return secret, nil
	},
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil && token.Valid:
	case errors.Is(err, jwt.ErrTokenExpired):
		return customErrors.ErrTokenExpired
	default:
		return customErrors.ErrInvalidToken
	}

	if t.issuer != "" {
		iss, err := token.Claims.GetIssuer()
		if err != nil || iss != t.issuer {
			return customErrors.ErrInvalidToken
		}
	}
	return nil
}
