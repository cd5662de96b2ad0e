package cli

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerWritesFrames(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Fetching alice.txt...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	assert.Contains(t, out.String(), "Fetching alice.txt...")
	assert.False(t, s.Cancelled(), "Stop is not a cancellation")
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, io.Discard, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	assert.True(t, s.Cancelled())
	s.Stop()
	assert.True(t, s.Cancelled(), "context ended before Stop")
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, io.Discard, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	assert.True(t, s.Cancelled())
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(io.Discard, "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(io.Discard, "never started")
	s.Stop()
	assert.False(t, s.Cancelled())
}

func TestSpinnerStopWithMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Testing...")
	s.Start()
	s.StopWithSuccess("Done!")
	assert.Contains(t, out.String(), "Done!")

	var errOut syncBuffer
	s = newSpinner(&errOut, "Testing...")
	s.Start()
	s.StopWithError("Failed!")
	assert.Contains(t, errOut.String(), "Failed!")
}
