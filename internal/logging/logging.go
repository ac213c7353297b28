// Package logging provides zerolog-based structured logging for the
// securion CLI, with trace IDs threaded through context so every log
// line emitted during a command can be correlated.
package logging

import (
	"context"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level to emit ("debug", "info", "warn", "error").
	Level string

	// Format selects output encoding: "console" (default) or "json".
	Format string

	// File, when non-empty, appends logs to the given path in addition
	// to stderr.
	File string

	// Out overrides the default stderr writer. Used by tests.
	Out io.Writer
}

type ctxKey int

const traceIDKey ctxKey = iota

// entropy is the shared monotonic source for trace ID generation.
var (
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // Trace IDs are not security-sensitive.
	entropyMu sync.Mutex
)

// Result is a constructed logger plus the log file handle behind it,
// if one was opened. Callers own the handle and must Close it when the
// command finishes.
type Result struct {
	Logger zerolog.Logger
	file   *os.File
}

// Close releases the log file handle. Safe on results without a file.
func (r *Result) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

// New builds a logger from cfg. Unknown levels fall back to info.
func New(cfg Config) *Result {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	var writers []io.Writer
	if cfg.Format == "json" {
		writers = append(writers, out)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	}

	result := &Result{}
	if cfg.File != "" {
		f, fileErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr == nil {
			result.file = f
			writers = append(writers, f)
		}
	}

	result.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return result
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger if
// none was attached.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}

// NewTraceID generates a new ULID trace identifier.
func NewTraceID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ContextWithTraceID stores a trace ID in the context.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or empty string.
func TraceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return ""
}

// GetOrGenerateTraceID returns the context's trace ID, generating a new
// one if the context has none.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewTraceID()
}
