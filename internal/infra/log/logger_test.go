package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("cart updated", slog.Int("count", 2))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cart updated", entry["msg"])
	assert.EqualValues(t, 2, entry["count"])
}

func TestNewLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, true, slog.LevelDebug)

	logger.Debug("identity resolved", slog.String("uid", "u1"))

	assert.Contains(t, buf.String(), "msg=\"identity resolved\"")
	assert.Contains(t, buf.String(), "uid=u1")
}
