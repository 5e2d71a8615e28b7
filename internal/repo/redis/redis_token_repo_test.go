package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
)

func newRepo(t *testing.T) (*RedisTokenRepo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewRedisTokenRepo(client), mr
}

func TestRevokeAccessAndIsAccessRevoked(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	exp := time.Now().Add(10 * time.Minute)
	if err := repo.RevokeAccess(ctx, "access-jti", exp); err != nil {
		t.Fatalf("RevokeAccess: %v", err)
	}

	revoked, err := repo.IsAccessRevoked(ctx, "access-jti")
	if err != nil {
		t.Fatalf("IsAccessRevoked err: %v", err)
	}
	if !revoked {
		t.Fatal("access token should be marked revoked")
	}
}

func TestIsAccessRevoked_KeyAbsent(t *testing.T) {
	repo, _ := newRepo(t)

	revoked, err := repo.IsAccessRevoked(context.Background(), "absent-jti")
	if err != nil {
		t.Fatalf("IsAccessRevoked err: %v", err)
	}
	if revoked {
		t.Fatal("absent key must be considered NOT revoked")
	}
}

func TestRevokedEntryExpires(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	if err := repo.RevokeAccess(ctx, "short-jti", time.Now().Add(30*time.Second)); err != nil {
		t.Fatalf("RevokeAccess: %v", err)
	}

	mr.FastForward(time.Minute)

	revoked, err := repo.IsAccessRevoked(ctx, "short-jti")
	if err != nil {
		t.Fatalf("IsAccessRevoked err: %v", err)
	}
	if revoked {
		t.Fatal("denylist entry must expire with the token")
	}
}

func TestRevokeAccessWithPastExpiry(t *testing.T) {
	repo, _ := newRepo(t)

	// already-expired token: the key still gets a finite TTL
	if err := repo.RevokeAccess(context.Background(), "stale-jti", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("RevokeAccess: %v", err)
	}
}
