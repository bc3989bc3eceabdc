package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoErrorf(t, err, "level %q", in)
		assert.Equalf(t, want, got, "level %q", in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSONFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", "json", &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "game", "g1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "g1", rec["game"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("debug", "text", &buf)
	require.NoError(t, err)

	l.Debug("tap", "cell", 4)
	assert.Contains(t, buf.String(), "msg=tap cell=4")
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
