package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pochy-chat/internal/config"
)

func TestNew_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithOutput(config.LogConfig{Level: "WARN", Format: "json"}, &buf)

	logger.Info().Msg("dropped")
	logger.Warn().Str("client", "1.2.3.4").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "1.2.3.4", entry["client"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithOutput(config.LogConfig{Level: "debug", Format: "console"}, &buf)

	logger.Debug().Str("path", "/api/chat").Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "/api/chat")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 100))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "héé...", Truncate("hééllo", 3))
	assert.Equal(t, strings.Repeat("x", 100), Truncate(strings.Repeat("x", 100), 100))
}
