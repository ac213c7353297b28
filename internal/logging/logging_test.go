package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelParsing(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "info", level: "info", want: zerolog.InfoLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "garbage defaults to info", level: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			result := New(Config{Level: tt.level, Format: "json", Out: &buf})
			assert.Equal(t, tt.want, result.Logger.GetLevel())
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Out: &buf}).Logger

	logger.Info().Str("operation", "list_projects").Msg("fetched")

	out := buf.String()
	assert.Contains(t, out, `"operation":"list_projects"`)
	assert.Contains(t, out, `"message":"fetched"`)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: "debug", Format: "json", Out: &buf}).Logger
	logger := ComponentLogger(base, "api")

	logger.Debug().Msg("request sent")

	assert.Contains(t, buf.String(), `"component":"api"`)
}

func TestNew_FileOutputClosedCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "securion.log")
	var buf bytes.Buffer

	result := New(Config{Level: "info", Format: "json", File: path, Out: &buf})
	result.Logger.Info().Msg("written before close")

	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written before close")

	// A nil result is closable so cleanup never needs a guard.
	assert.NoError(t, (*Result)(nil).Close())
}

func TestResult_CloseWithoutFile(t *testing.T) {
	result := New(Config{Level: "info", Format: "json", Out: &bytes.Buffer{}})
	assert.NoError(t, result.Close())
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	id := NewTraceID()
	require.Len(t, id, 26) // ULID canonical encoding

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
}

func TestGetOrGenerateTraceID_Generates(t *testing.T) {
	id := GetOrGenerateTraceID(context.Background())
	assert.NotEmpty(t, id)

	other := GetOrGenerateTraceID(context.Background())
	assert.NotEqual(t, id, other)
}

func TestFromContext_Disabled(t *testing.T) {
	logger := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
