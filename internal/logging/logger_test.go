package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{ServiceName: "carparking-test", Environment: "test", Level: "info", Output: &buf})

	Info(context.Background(), "lot created", "lot_id", "L1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lot created", entry["msg"])
	assert.Equal(t, "L1", entry["lot_id"])
	assert.Equal(t, "carparking-test", entry["service"])
	assert.Equal(t, "test", entry["environment"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{ServiceName: "carparking-test", Level: "info", Output: &buf})

	Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{ServiceName: "carparking-test", Output: &buf})

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	Warn(ctx, "slot missing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["traceId"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["spanId"])
}

type failingHandler struct{ err error }

func (h failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h failingHandler) WithGroup(string) slog.Handler             { return h }

func TestMultiHandlerKeepsWritingAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	exportErr := errors.New("export failed")
	h := &multiHandler{handlers: []slog.Handler{
		failingHandler{err: exportErr},
		slog.NewJSONHandler(&buf, nil),
	}}

	err := slog.New(h).Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "car parked", 0))

	assert.ErrorIs(t, err, exportErr)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "car parked", entry["msg"])
}

func TestDebugWrittenAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{ServiceName: "carparking-test", Level: "debug", Output: &buf})

	Debug(context.Background(), "configuration loaded", "mode", "cli")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "cli", entry["mode"])
}
