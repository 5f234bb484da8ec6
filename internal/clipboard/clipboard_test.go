package clipboard_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DMarby/utility-docs/internal/clipboard"
	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilinna/clock"
	"go.uber.org/zap"
)

type recorder struct {
	mu      sync.Mutex
	written []string
	err     error
}

func (r *recorder) WriteText(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}

	r.written = append(r.written, text)
	return nil
}

func setupMarker(t *testing.T, writer clipboard.Writer) (*clipboard.Marker, *clock.Mock, chan string) {
	t.Helper()

	log := logger.New(zap.FatalLevel)
	t.Cleanup(func() { log.Sync() })

	mock := clock.NewMock(time.Unix(0, 0))
	changes := make(chan string, 16)

	marker := &clipboard.Marker{
		Writer:   writer,
		Log:      log,
		Clock:    mock,
		OnChange: func(copied string) { changes <- copied },
	}

	return marker, mock, changes
}

func waitForChange(t *testing.T, changes chan string) string {
	t.Helper()

	select {
	case copied := <-changes:
		return copied
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the marker to change")
		return ""
	}
}

func TestCopy(t *testing.T) {
	writer := &recorder{}
	marker, mock, changes := setupMarker(t, writer)

	require.True(t, marker.Copy(context.Background(), "cursor-pointer"))
	assert.Equal(t, "cursor-pointer", waitForChange(t, changes))
	assert.Equal(t, []string{"cursor-pointer"}, writer.written)
	assert.Equal(t, "cursor-pointer", marker.Copied())
	assert.True(t, marker.IsCopied("cursor-pointer"))
	assert.False(t, marker.IsCopied("cursor-wait"))

	// Still marked right before the delay elapses
	mock.Add(clipboard.ClearDelay - time.Millisecond)
	assert.Equal(t, "cursor-pointer", marker.Copied())

	mock.Add(time.Millisecond)
	assert.Equal(t, "", waitForChange(t, changes))
	assert.Equal(t, "", marker.Copied())
	assert.False(t, marker.IsCopied(""))
}

func TestCopyLastCallWins(t *testing.T) {
	marker, mock, changes := setupMarker(t, &recorder{})
	ctx := context.Background()

	marker.Copy(ctx, "w-1/2")
	assert.Equal(t, "w-1/2", waitForChange(t, changes))

	mock.Add(time.Second)
	marker.Copy(ctx, "w-full")
	assert.Equal(t, "w-full", waitForChange(t, changes))

	// The first copy would have expired here
	mock.Add(500 * time.Millisecond)
	assert.Equal(t, "w-full", marker.Copied())
	assert.Empty(t, changes)

	mock.Add(900 * time.Millisecond)
	assert.Equal(t, "", waitForChange(t, changes))
	assert.Equal(t, "", marker.Copied())
}

func TestCopySameTextRestartsDelay(t *testing.T) {
	marker, mock, changes := setupMarker(t, &recorder{})
	ctx := context.Background()

	marker.Copy(ctx, "outline")
	assert.Equal(t, "outline", waitForChange(t, changes))

	mock.Add(time.Second)
	marker.Copy(ctx, "outline")

	mock.Add(time.Second)
	assert.Equal(t, "outline", marker.Copied())

	mock.Add(400 * time.Millisecond)
	assert.Equal(t, "", waitForChange(t, changes))
}

func TestCopyError(t *testing.T) {
	writer := &recorder{}
	marker, _, changes := setupMarker(t, writer)
	ctx := context.Background()

	require.True(t, marker.Copy(ctx, "select-all"))
	assert.Equal(t, "select-all", waitForChange(t, changes))

	writer.err = errors.New("permission denied")
	assert.False(t, marker.Copy(ctx, "select-none"))
	assert.Equal(t, "", waitForChange(t, changes))
	assert.Equal(t, "", marker.Copied())
}

func TestCopyEmpty(t *testing.T) {
	writer := &recorder{}
	marker, _, changes := setupMarker(t, writer)
	ctx := context.Background()

	require.True(t, marker.Copy(ctx, "cursor-wait"))
	assert.Equal(t, "cursor-wait", waitForChange(t, changes))

	assert.False(t, marker.Copy(ctx, ""))
	assert.Equal(t, []string{"cursor-wait"}, writer.written)
	assert.Equal(t, "cursor-wait", marker.Copied())
	assert.Empty(t, changes)
}

func TestClear(t *testing.T) {
	marker, mock, changes := setupMarker(t, &recorder{})

	marker.Copy(context.Background(), "outline-none")
	assert.Equal(t, "outline-none", waitForChange(t, changes))

	marker.Clear()
	assert.Equal(t, "", waitForChange(t, changes))

	// The pending expiry was cancelled and doesn't fire again
	mock.Add(clipboard.ClearDelay)
	assert.Empty(t, changes)
}

func TestRealtime(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	marker := clipboard.New(clipboard.WriterFunc(func(ctx context.Context, text string) error {
		return nil
	}), log)
	marker.Delay = 10 * time.Millisecond

	marker.Copy(context.Background(), "cursor-wait")
	assert.Equal(t, "cursor-wait", marker.Copied())

	assert.Eventually(t, func() bool {
		return marker.Copied() == ""
	}, time.Second, time.Millisecond)
}

func TestNilMarker(t *testing.T) {
	var marker *clipboard.Marker
	assert.False(t, marker.IsCopied("cursor-pointer"))
}
