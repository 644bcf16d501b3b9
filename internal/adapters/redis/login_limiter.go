package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"userhub/internal/domain"
)

const loginKeyPrefix = "userhub:login:"

// LoginLimiter counts failed logins per email in a fixed window that starts
// at the first failure.
type LoginLimiter struct {
	redis       redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

var _ domain.LoginLimiter = (*LoginLimiter)(nil)

func NewLoginLimiter(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		redis:       client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Check returns domain.ErrTooManyAttempts once maxAttempts failures are
// recorded inside the current window.
func (l *LoginLimiter) Check(ctx context.Context, email string) error {
	count, err := l.redis.Get(ctx, loginKey(email)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("login limiter get failed: %w", err)
	}

	if count >= int64(l.maxAttempts) {
		return domain.ErrTooManyAttempts
	}

	return nil
}

func (l *LoginLimiter) Fail(ctx context.Context, email string) error {
	key := loginKey(email)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login limiter incr failed: %w", err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("login limiter expire failed: %w", err)
		}
	}

	if count >= int64(l.maxAttempts) {
		return domain.ErrTooManyAttempts
	}

	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.redis.Del(ctx, loginKey(email)).Err(); err != nil {
		return fmt.Errorf("login limiter del failed: %w", err)
	}
	return nil
}

func loginKey(email string) string {
	return loginKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
