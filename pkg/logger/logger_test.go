package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("login-probe", &buf, "info")

	log.Info("login probe completed", map[string]interface{}{"status_code": 200})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "login-probe", entry["service"])
	assert.Equal(t, "login probe completed", entry["message"])
	assert.Equal(t, float64(200), entry["status_code"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestJSONLogger_DropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("svc", &buf, "warn")

	log.Debug("d", nil)
	log.Info("i", nil)
	log.Warn("w", nil)
	log.Error("e", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"message":"w"`)
	assert.Contains(t, lines[1], `"message":"e"`)
}

func TestJSONLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("svc", &buf, "verbose")

	log.Debug("hidden", nil)
	log.Info("shown", nil)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
