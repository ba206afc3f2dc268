package logger_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/lessonkit/internal/config"
	"github.com/phrazzld/lessonkit/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter_Levels(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		level      string
		debugShown bool
		infoShown  bool
	}{
		{level: "debug", debugShown: true, infoShown: true},
		{level: "INFO", infoShown: true},
		{level: "warn"},
		{level: "error"},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")

			assert.Equal(t, tc.debugShown, strings.Contains(buf.String(), "debug message"))
			assert.Equal(t, tc.infoShown, strings.Contains(buf.String(), "info message"))
			assert.Same(t, l, slog.Default())
		})
	}
}

func TestSetupWithWriter_InvalidLevelWarns(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "verbose"}, buf)
	require.NoError(t, err)

	logger.AssertLogField(t, buf, "configured_level", "verbose")
	l.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestFromContext(t *testing.T) {
	_, custom := logger.NewTestLogger(t)

	ctx := logger.WithLogger(context.Background(), custom)
	assert.Same(t, custom, logger.FromContext(ctx))

	fallback := slog.New(slog.DiscardHandler)
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
}
