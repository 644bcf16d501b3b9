package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditStream_AppendAndLatest(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewAuditStream(client, 100)
	ctx := context.Background()

	_, err := s.Append(ctx, "user.registered", map[string]any{"user_id": 1})
	require.NoError(t, err)
	_, err = s.Append(ctx, "user.deleted", map[string]any{"user_id": 1})
	require.NoError(t, err)

	entries, err := s.latest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "user.deleted", entries[0].Action)
	assert.JSONEq(t, `{"user_id":1}`, string(entries[0].Data))
	assert.Equal(t, "user.registered", entries[1].Action)
	assert.NotEmpty(t, entries[1].ID)
}
