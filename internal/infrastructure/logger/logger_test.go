package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "warn", "json")

	l.Infof("hidden %d", 1)
	assert.Zero(t, buf.Len())

	l.WithField("listing", "L1").Warnf("cache error: %s", "timeout")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "cache error: timeout", entry["msg"])
	assert.Equal(t, "L1", entry["listing"])
	assert.Equal(t, "airhost", entry["service"])
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "chatty", "text")

	l.Debugf("nope")
	assert.Zero(t, buf.Len())
	l.Infof("listening on %s", ":8080")
	assert.Contains(t, buf.String(), "listening on :8080")
}
