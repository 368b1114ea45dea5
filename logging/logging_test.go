package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mazepath/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Log{Level: "info", Format: "json"}, "cli", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("solved", "cost", 7036)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "exactly one JSON record: %s", buf.String())
	assert.Equal(t, "solved", rec["msg"])
	assert.Equal(t, "cli", rec["service"])
	assert.EqualValues(t, 7036, rec["cost"])
}

func TestNew_BadFormat(t *testing.T) {
	_, err := New(config.Log{Level: "info", Format: "xml"}, "", nil)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
