package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "upper case", level: "INFO", want: zerolog.InfoLevel},
		{name: "empty defaults to warn", level: "", want: zerolog.WarnLevel},
		{name: "invalid defaults to warn", level: "loud", want: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLogger(Config{Level: tt.level, Format: FormatJSON}, &bytes.Buffer{})
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewLogger_JSONCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "info", Format: FormatJSON}, &buf)
	l = ComponentLogger(l, "api")

	ctx := ContextWithTraceID(context.Background(), "01TESTTRACE")
	l.Info().Ctx(ctx).Msg("fetched page")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "01TESTTRACE", entry[TraceIDField])
	assert.Equal(t, "fetched page", entry["message"])
}

func TestNewLoggerWithPath(t *testing.T) {
	t.Run("stderr when no file", func(t *testing.T) {
		res := NewLoggerWithPath(Config{Level: "info", Output: OutputStderr})
		assert.False(t, res.UsingFile)
		assert.False(t, res.FallbackUsed)
		assert.NoError(t, res.Close())
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.log")
		res := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
		require.True(t, res.UsingFile)
		assert.Equal(t, path, res.FilePath)
		assert.True(t, res.IsOpen())

		res.Logger.Info().Msg("hello")
		require.NoError(t, res.Close())
		assert.False(t, res.IsOpen())
		assert.NoError(t, res.Close(), "second close is a no-op")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"hello"`)
	})

	t.Run("falls back when file cannot be opened", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", "export.log")
		res := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
		assert.False(t, res.UsingFile)
		assert.True(t, res.FallbackUsed)
		assert.NotEmpty(t, res.FallbackReason)
	})
}

func TestTraceIDs(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	generated := GetOrGenerateTraceID(context.Background())
	assert.Len(t, generated, 26)

	ctx := ContextWithTraceID(context.Background(), generated)
	assert.Equal(t, generated, GetOrGenerateTraceID(ctx))
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "permission denied")
	assert.Contains(t, buf.String(), "Logging to /tmp/x.log")
	assert.Contains(t, buf.String(), "permission denied")
}
