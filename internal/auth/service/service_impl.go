package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	customErrors "github.com/veldt-labs/auth-service/internal/auth/errors"
	"github.com/veldt-labs/auth-service/internal/auth/dto"
	"github.com/veldt-labs/auth-service/internal/auth/jwt"
	"github.com/veldt-labs/auth-service/internal/auth/model"
	"github.com/veldt-labs/auth-service/internal/auth/password"
	"github.com/veldt-labs/auth-service/internal/repo"
)

type authService struct {
	userRepo  repo.UserRepo
	tokenRepo repo.TokenRepo
	issuer    jwt.TokenIssuer
	hasher    *password.Hasher
	v         *validator.Validate
	log       *zap.Logger
}

func New(
	ur repo.UserRepo,
	tr repo.TokenRepo,
	iss jwt.TokenIssuer,
	h *password.Hasher,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	return &authService{
		userRepo: ur, tokenRepo: tr, issuer: iss, hasher: h, v: v, log: log,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.PublicUser, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := a.v.Struct(in); err != nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	// No existence pre-check: two racing registrations would both pass it.
	// The store's unique constraints are the arbiter.
	user, err := a.userRepo.CreateUser(ctx, model.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.PublicUser{}, customErrors.ErrAlreadyExists
		}
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	a.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user.Public(), nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.PublicUser, model.TokenPair, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := a.v.Struct(in); err != nil {
		return model.PublicUser{}, model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// same answer as a wrong password, so callers cannot probe which
		// accounts exist
		return model.PublicUser{}, model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.PublicUser{}, model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.PublicUser{}, model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	pair, err := a.issuePair(user.ID)
	if err != nil {
		return model.PublicUser{}, model.TokenPair{}, err
	}

	// overwrite displaces any earlier refresh token for this user
	if err := a.userRepo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return model.PublicUser{}, model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	a.log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return user.Public(), pair, nil
}

func (a *authService) Logout(ctx context.Context, userID uuid.UUID, in dto.LogoutDTO) error {
	if err := a.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}

	if in.AccessToken != "" {
		// access token may already be expired, which is not an error here
		if claims, err := a.issuer.ValidateAccessToken(in.AccessToken); err == nil {
			if err := a.tokenRepo.RevokeAccess(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
				a.log.Warn("failed to denylist access token",
					zap.String("user_id", userID.String()), zap.Error(err))
			}
		}
	}

	a.log.Info("user logged out", zap.String("user_id", userID.String()))
	return nil
}

func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	claims, err := a.issuer.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		// expired and forged answer identically; the distinction lives in
		// the logs only
		if customErrors.IsTokenExpired(err) {
			a.log.Debug("expired refresh token presented")
		}
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	pair, err := a.issuePair(user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	rotated, err := a.userRepo.RotateRefreshToken(ctx, user.ID, in.RefreshToken, pair.RefreshToken)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}
	if !rotated {
		// validly signed but no longer the stored value: either it was
		// already exchanged once (possible theft) or the session is gone
		a.log.Warn("refresh token reuse detected",
			zap.String("user_id", user.ID.String()),
			zap.String("jti", claims.ID))
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	return pair, nil
}

func (a *authService) Validate(ctx context.Context, in dto.ValidateDTO) (model.PublicUser, error) {
	if err := a.v.Struct(in); err != nil {
		return model.PublicUser{}, customErrors.ErrInvalidToken
	}

	claims, err := a.issuer.ValidateAccessToken(in.AccessToken)
	if err != nil {
		return model.PublicUser{}, customErrors.ErrInvalidToken
	}

	revoked, err := a.tokenRepo.IsAccessRevoked(ctx, claims.ID)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Validate")
	}
	if revoked {
		return model.PublicUser{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.PublicUser{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	if err != nil {
		return model.PublicUser{}, customErrors.ErrInvalidToken
	}
	return user.Public(), nil
}

func (a *authService) issuePair(uid uuid.UUID) (model.TokenPair, error) {
	at, atExp, _, err := a.issuer.GenerateAccessToken(uid)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, _, err := a.issuer.GenerateRefreshToken(uid)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       uid,
	}, nil
}
