package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "text", Output: &buf})

	l.Info("hidden")
	l.Debug("hidden too")
	l.Warn("shown", "route", "BOS-BLR")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "route=BOS-BLR")
}

func TestNew_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "DEBUG", Format: "json", Output: &buf}).
		WithField("search_id", "abc").
		WithFields(map[string]interface{}{"origin": "BOS"})

	l.Error(errors.New("boom"), "search failed", "status", 403)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "search failed", entry["msg"])
	assert.Equal(t, "abc", entry["search_id"])
	assert.Equal(t, "BOS", entry["origin"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, float64(403), entry["status"])
}

func TestParseLevel_Default(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "nonsense", Output: &buf})
	l.Debug("dropped")
	l.Info("kept")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.NotNil(t, l.Slog())
}
