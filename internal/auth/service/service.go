package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/veldt-labs/auth-service/internal/auth/dto"
	"github.com/veldt-labs/auth-service/internal/auth/model"
)

// Service is the session manager. It owns the single-active-refresh-token
// invariant: login overwrites the stored token, refresh rotates it with a
// conditional swap, logout clears it.
type Service interface {
	// Register creates an account. No tokens are issued; a registered
	// user still has to log in explicitly.
	Register(ctx context.Context, in dto.RegisterDTO) (model.PublicUser, error)

	// Login verifies credentials by username or email and issues a fresh
	// token pair, displacing any previously active refresh token.
	Login(ctx context.Context, in dto.LoginDTO) (model.PublicUser, model.TokenPair, error)

	// Logout clears the stored refresh token (idempotent) and, when an
	// access token is supplied, denylists it until its natural expiry.
	Logout(ctx context.Context, userID uuid.UUID, in dto.LogoutDTO) error

	// Refresh exchanges a refresh token for a new pair. A token that was
	// already exchanged once is treated as a replay and rejected.
	Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error)

	// Validate authenticates an access token and returns its subject.
	Validate(ctx context.Context, in dto.ValidateDTO) (model.PublicUser, error)
}
