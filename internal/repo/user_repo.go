package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/veldt-labs/auth-service/internal/auth/model"
)

// UserRepo is the credential store. Uniqueness of username and email is
// enforced by the store at write time; callers must not rely on a
// read-then-create check.
type UserRepo interface {
	// CreateUser persists a new user. Returns ErrAlreadyExists when the
	// username or email is already taken.
	CreateUser(ctx context.Context, u model.User) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// GetUserByUsernameOrEmail matches on either column; pass "" for the
	// identifier that is not known.
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error)

	// SetRefreshToken unconditionally overwrites the stored refresh token,
	// invalidating whatever was there before. Login uses this.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// RotateRefreshToken swaps current for next in a single conditional
	// update. It reports false when the stored token no longer equals
	// current, which is how concurrent or replayed rotations lose.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string) (bool, error)

	// ClearRefreshToken empties the stored token. Clearing an already
	// empty token is a successful no-op.
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
}
