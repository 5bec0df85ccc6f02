package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fairwaylab/scorelens/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithStrategy(ctx, "structure-only")
	ctx = logging.WithBackend(ctx, "gemini")

	logger := logging.FromContext(ctx)
	logger.Info().Msg("test message")

	testLogger.AssertContains(t, "structure-only")
	testLogger.AssertContains(t, "gemini")
	testLogger.AssertContains(t, "test message")
}

func TestRequestID(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithRequestID(ctx, "req-123")

	if got := logging.RequestID(ctx); got != "req-123" {
		t.Errorf("RequestID() = %q, want %q", got, "req-123")
	}

	logging.FromContext(ctx).Info().Msg("traced")
	testLogger.AssertContains(t, "req-123")
}

func TestFromContextFallsBack(t *testing.T) {
	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext should fall back to the default logger")
	}
	if logging.FromContext(nil) == nil { //nolint:staticcheck // nil context fallback is the point
		t.Error("FromContext(nil) should fall back to the default logger")
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	cfg := &logging.Config{
		Level:  "warn",
		Format: "json",
		Output: "discard",
	}
	logger := logging.NewLoggerFromConfig(cfg)

	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %s", logger.GetLevel())
	}
}
