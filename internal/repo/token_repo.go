package repo

import (
	"context"
	"time"
)

// TokenRepo is the access-token denylist. Logout records the jti of the
// presented access token until its natural expiry so it cannot be replayed
// for the rest of its lifetime.
type TokenRepo interface {
	RevokeAccess(ctx context.Context, jti string, exp time.Time) error
	IsAccessRevoked(ctx context.Context, jti string) (bool, error)
}
