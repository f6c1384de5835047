package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	AccountKeyPrefix   = "account:%d"
	BlacklistKeyPrefix = "blacklist:%s"
)

const (
	AccountTTL = 5 * time.Minute
)

func AccountKey(accountID uint) string {
	return fmt.Sprintf(AccountKeyPrefix, accountID)
}

func blacklistKey(jti string) string {
	return fmt.Sprintf(BlacklistKeyPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateAccount(ctx context.Context, accountID uint) {
	Invalidate(ctx, AccountKey(accountID))
}

// BlacklistToken stores a token's jti until its natural expiry. Used by
// logout; blacklisting the same jti twice is harmless, which keeps logout
// idempotent.
func BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return client.Set(ctx, blacklistKey(jti), "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the jti has been revoked. Without Redis
// revocation degrades to token expiry.
func IsTokenBlacklisted(ctx context.Context, jti string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, blacklistKey(jti)).Result()
	return err == nil && n > 0
}
