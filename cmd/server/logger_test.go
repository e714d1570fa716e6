package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "json")

	logger.Debug("hello", "room", "lobby")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "lobby", line["room"])
}

func TestNewLoggerFallsBackToInfoText(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "loud", "yaml")

	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Info("ready")
	assert.Contains(t, buf.String(), "msg=ready")
}
