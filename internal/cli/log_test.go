package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Scaled alice.txt")

	assert.Contains(t, buf.String(), "Scaled alice.txt (")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Equal(t, log.Default(), loggerFromContext(context.Background()))

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	assert.Same(t, custom, loggerFromContext(ctx))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnFetchStart(ctx, "alice.txt")
	h.OnFetchComplete(ctx, "alice.txt", 20, time.Millisecond, nil)
	h.OnFetchComplete(ctx, "gone.txt", 0, time.Millisecond, errors.New("corpus not found"))
	h.OnScaleComplete(ctx, "alice.txt", 20, time.Microsecond)
	h.OnRequest(ctx, "GET", "localhost:3005", "/alice.txt")
	h.OnResponse(ctx, "GET", "localhost:3005", "/alice.txt", 200, time.Millisecond)
	h.OnError(ctx, "GET", "localhost:3005", "/alice.txt", errors.New("refused"))

	out := buf.String()
	for _, want := range []string{"fetching counts", "fetch complete", "fetch failed", "scaled weights", "http request", "http response", "http error"} {
		assert.Contains(t, out, want)
	}
}
