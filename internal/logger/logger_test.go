package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "text")

	log.Debug("dbg")
	log.Info("inf")
	log.Warn("wrn", "k", "v")
	log.Error("err", "code", 7)

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "code=7")
}

func TestJSON_WithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "JSON").With("request_id", "abc")

	log.Debug("hello", "user", "alice")

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "alice", line["user"])
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop()
	log.Info("x")
	log.With("a", 1).Error("y")
}
