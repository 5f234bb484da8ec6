// Package clipboard tracks which text was most recently copied, so that
// "Copied!" feedback can be shown and automatically cleared again.
package clipboard

import (
	"context"
	"sync"
	"time"

	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/tilinna/clock"
)

// ClearDelay is how long a copied value stays marked as copied
const ClearDelay = 1400 * time.Millisecond

// Writer writes text to a clipboard
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc adapts a function to a Writer
type WriterFunc func(ctx context.Context, text string) error

// WriteText calls f(ctx, text)
func (f WriterFunc) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Marker copies text through a Writer and remembers the last copied value until it expires
type Marker struct {
	Writer Writer
	Log    *logger.Logger
	Clock  clock.Clock   // Defaults to the realtime clock
	Delay  time.Duration // Defaults to ClearDelay

	// OnChange, if set, is called with the new marker value every time it changes
	OnChange func(copied string)

	mu         sync.Mutex
	copied     string
	generation uint64
	timer      *clock.Timer
}

// New returns a Marker using the realtime clock and the default delay
func New(writer Writer, log *logger.Logger) *Marker {
	return &Marker{
		Writer: writer,
		Log:    log,
	}
}

// Copy writes text to the clipboard and marks it as copied
// Errors are logged and leave the marker cleared, the return value reports whether the write succeeded.
// Empty text can't be told apart from nothing copied, so it isn't written and the marker is left as is
func (m *Marker) Copy(ctx context.Context, text string) bool {
	if text == "" {
		return false
	}

	if err := m.Writer.WriteText(ctx, text); err != nil {
		m.Log.Errorw("error copying to clipboard", "error", err)
		m.set("", false)
		return false
	}

	m.set(text, true)
	return true
}

// Copied returns the currently copied value, or an empty string
func (m *Marker) Copied() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.copied
}

// IsCopied reports whether text is the currently copied value
func (m *Marker) IsCopied(text string) bool {
	if m == nil {
		return false
	}

	copied := m.Copied()
	return copied != "" && copied == text
}

// Clear clears the marker and cancels any pending expiry
func (m *Marker) Clear() {
	m.set("", false)
}

func (m *Marker) set(copied string, expire bool) {
	m.mu.Lock()

	// A newer value always wins over a pending expiry
	m.generation++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	changed := m.copied != copied
	m.copied = copied

	if expire {
		generation := m.generation
		m.timer = m.clock().AfterFunc(m.delay(), func() {
			m.expire(generation)
		})
	}

	onChange := m.OnChange
	m.mu.Unlock()

	if changed && onChange != nil {
		onChange(copied)
	}
}

func (m *Marker) expire(generation uint64) {
	m.mu.Lock()

	// Superseded by a later Copy or Clear
	if generation != m.generation || m.copied == "" {
		m.mu.Unlock()
		return
	}

	m.copied = ""
	m.timer = nil
	onChange := m.OnChange
	m.mu.Unlock()

	if onChange != nil {
		onChange("")
	}
}

func (m *Marker) clock() clock.Clock {
	if m.Clock == nil {
		return clock.Realtime()
	}

	return m.Clock
}

func (m *Marker) delay() time.Duration {
	if m.Delay <= 0 {
		return ClearDelay
	}

	return m.Delay
}
