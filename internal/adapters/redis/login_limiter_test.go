package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestLoginLimiter_LocksAfterMaxFailures(t *testing.T) {
	_, client := newTestRedis(t)
	lim := NewLoginLimiter(client, 3, time.Minute)
	ctx := context.Background()

	require.NoError(t, lim.Check(ctx, "john@example.com"))

	require.NoError(t, lim.Fail(ctx, "john@example.com"))
	require.NoError(t, lim.Fail(ctx, "john@example.com"))
	require.NoError(t, lim.Check(ctx, "john@example.com"))

	require.ErrorIs(t, lim.Fail(ctx, "john@example.com"), domain.ErrTooManyAttempts)
	require.ErrorIs(t, lim.Check(ctx, "john@example.com"), domain.ErrTooManyAttempts)

	// Other accounts are unaffected.
	require.NoError(t, lim.Check(ctx, "jane@example.com"))
}

func TestLoginLimiter_KeyIsCaseInsensitive(t *testing.T) {
	_, client := newTestRedis(t)
	lim := NewLoginLimiter(client, 1, time.Minute)
	ctx := context.Background()

	require.ErrorIs(t, lim.Fail(ctx, "John@Example.com"), domain.ErrTooManyAttempts)
	require.ErrorIs(t, lim.Check(ctx, "john@example.com"), domain.ErrTooManyAttempts)
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	lim := NewLoginLimiter(client, 2, time.Minute)
	ctx := context.Background()

	require.NoError(t, lim.Fail(ctx, "john@example.com"))
	require.ErrorIs(t, lim.Fail(ctx, "john@example.com"), domain.ErrTooManyAttempts)

	assert.Equal(t, time.Minute, mr.TTL(loginKey("john@example.com")))

	mr.FastForward(time.Minute + time.Second)
	require.NoError(t, lim.Check(ctx, "john@example.com"))
}

func TestLoginLimiter_Reset(t *testing.T) {
	mr, client := newTestRedis(t)
	lim := NewLoginLimiter(client, 1, time.Minute)
	ctx := context.Background()

	_ = lim.Fail(ctx, "john@example.com")
	require.ErrorIs(t, lim.Check(ctx, "john@example.com"), domain.ErrTooManyAttempts)

	require.NoError(t, lim.Reset(ctx, "john@example.com"))
	require.NoError(t, lim.Check(ctx, "john@example.com"))
	assert.False(t, mr.Exists(loginKey("john@example.com")))
}

func TestLoginLimiter_Unavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	lim := NewLoginLimiter(client, 1, time.Minute)
	mr.Close()

	err := lim.Check(context.Background(), "john@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTooManyAttempts)
}
