package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const AuditStreamKey = "userhub:audit"

// AuditEntry is one record on the audit stream.
type AuditEntry struct {
	ID     string          `json:"-"`
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// AuditStream appends account events to a capped Redis stream.
type AuditStream struct {
	redis  redis.UniversalClient
	stream string
	maxLen int64
}

func NewAuditStream(client redis.UniversalClient, maxLen int64) *AuditStream {
	return &AuditStream{redis: client, stream: AuditStreamKey, maxLen: maxLen}
}

func (s *AuditStream) Append(ctx context.Context, action string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("audit marshal failed: %w", err)
	}

	id, err := s.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"action": action,
			"data":   data,
		},
		MaxLen: s.maxLen,
		Approx: true,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("audit xadd failed: %w", err)
	}

	return id, nil
}

// latest returns up to limit entries, newest first.
func (s *AuditStream) latest(ctx context.Context, limit int64) ([]AuditEntry, error) {
	msgs, err := s.redis.XRevRangeN(ctx, s.stream, "+", "-", limit).Result()
	if err != nil {
		return nil, fmt.Errorf("audit xrevrange failed: %w", err)
	}

	entries := make([]AuditEntry, 0, len(msgs))
	for _, m := range msgs {
		e := AuditEntry{ID: m.ID}
		if v, ok := m.Values["action"].(string); ok {
			e.Action = v
		}
		if v, ok := m.Values["data"].(string); ok {
			e.Data = json.RawMessage(v)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
