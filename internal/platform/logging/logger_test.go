package logging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel(" DEBUG "))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_WithAndFields(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core)).With("component", "section_scheduler")

	logger.Debug("dropped")
	logger.WarnContext(context.Background(), "section completion failed", "event_id", "ufc-1", "error", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "section_scheduler", fields["component"])
	require.Equal(t, "ufc-1", fields["event_id"])
	require.Equal(t, "boom", fields["error"])
}

func TestLogger_Mirror(t *testing.T) {
	var (
		mu   sync.Mutex
		msgs []string
		seen []any
	)
	SetMirror(func(_ context.Context, _ Level, msg string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		msgs = append(msgs, msg)
		seen = args
	})
	t.Cleanup(func() { SetMirror(nil) })

	core, _ := observer.New(LevelInfo)
	logger := FromZap(zap.New(core)).With("component", "poller")
	logger.Debug("below level")
	logger.Info("fights promoted", "count", 2)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"fights promoted"}, msgs)
	require.Equal(t, []any{"component", "poller", "count", 2}, seen)
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	require.NotNil(t, logger.With("k", "v"))
	require.NoError(t, logger.Sync())
}
