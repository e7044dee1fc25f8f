package auth

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/cache"
	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token ids until the token would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const denylistPrefix = "campus:revoked:"

type RedisDenylist struct {
	rdb *redis.Client
}

func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{rdb: rdb}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, denylistPrefix+jti, 1, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryDenylist is the single-process fallback when no Redis is configured.
type MemoryDenylist struct {
	c      *cache.Cache[struct{}]
	writes atomic.Uint64
}

// sweep expired entries every this many revocations
const denylistSweepEvery = 256

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{c: cache.New[struct{}](time.Hour)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	d.c.SetTTL(jti, struct{}{}, ttl)
	if d.writes.Add(1)%denylistSweepEvery == 0 {
		d.c.Sweep()
	}
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := d.c.Get(jti)
	return ok, nil
}

// Verifier checks a token's signature and expiry, then the denylist.
type Verifier struct {
	tokens   *Manager
	denylist Denylist
}

func NewVerifier(tokens *Manager, denylist Denylist) *Verifier {
	return &Verifier{tokens: tokens, denylist: denylist}
}

func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims, err := v.tokens.VerifyAccessToken(raw)
	if err != nil {
		return nil, err
	}

	if v.denylist == nil {
		return claims, nil
	}

	revoked, err := v.denylist.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("check denylist: %w", err)
	}
	if revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

func (v *Verifier) Revoke(ctx context.Context, claims *Claims) error {
	if v.denylist == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return v.denylist.Revoke(ctx, claims.JTI, claims.ExpiresAt.Time)
}
