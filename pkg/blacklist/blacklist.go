package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist tracks revoked tokens in Redis. Two markers exist:
// per-token entries (logout) and per-user "valid-since" timestamps
// (password reset), both TTL-scoped so Redis cleans up after the
// longest possible token lifetime.
type TokenBlacklist struct {
	redis *redis.Client
}

func NewTokenBlacklist(redisClient *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{
		redis: redisClient,
	}
}

// AddAccessToken blacklists an access token for its remaining lifetime.
func (b *TokenBlacklist) AddAccessToken(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}

	key := fmt.Sprintf("blacklist:token:%s", token)
	if err := b.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}

	return nil
}

// IsBlacklisted checks whether a specific token has been revoked.
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:token:%s", token)

	exists, err := b.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return exists > 0, nil
}

// RevokeUserTokens invalidates every token issued to the user before
// now. The marker must outlive the longest token lifetime.
func (b *TokenBlacklist) RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	key := fmt.Sprintf("blacklist:user:%s", userID)
	if err := b.redis.Set(ctx, key, time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return nil
}

// IsUserRevoked reports whether a token issued at tokenIssuedAt falls
// before the user's invalidation marker.
func (b *TokenBlacklist) IsUserRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	key := fmt.Sprintf("blacklist:user:%s", userID)

	timestamp, err := b.redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user revocation: %w", err)
	}

	return tokenIssuedAt.Before(time.Unix(timestamp, 0)), nil
}
