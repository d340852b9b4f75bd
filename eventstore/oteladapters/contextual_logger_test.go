package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
)

func Test_SlogBridgeLogger_WithHandler_LogsAllLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "book_id", "b-1", "event_count", 2)
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"msg":"info message"`)
	assert.Contains(t, output, `"book_id":"b-1"`)
	assert.Contains(t, output, `"event_count":2`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
}

func Test_SlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("circulation")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "book reserved", "book_id", "b-1")
	})
}

func Test_OTelLogger_HandlesOddArguments(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	assert.NotPanics(t, func() {
		logger.DebugContext(context.Background(), "debug", "key")
		logger.InfoContext(context.Background(), "info", 42, "value", "key", 3.14)
		logger.WarnContext(context.Background(), "warn", "key", struct{ A int }{A: 1})
		logger.ErrorContext(context.Background(), "error")
	})
}
