// Package notify holds transient user notifications.
package notify

import (
	"sync"
	"time"
)

// DefaultDismissAfter is how long a banner stays up unless dismissed.
const DefaultDismissAfter = 4000 * time.Millisecond

// Banner shows one message at a time and clears it after a delay. Each Show
// replaces the message and restarts the delay. Close cancels the pending
// clear and ignores later calls, tying the timer to the owner's lifetime.
type Banner struct {
	mu      sync.Mutex
	after   time.Duration
	message string
	timer   *time.Timer
	seq     uint64
	closed  bool

	onChange func(message string)
}

type Option func(*Banner)

// WithDismissAfter overrides DefaultDismissAfter. Non-positive values keep
// the message until it is dismissed.
func WithDismissAfter(d time.Duration) Option {
	return func(b *Banner) { b.after = d }
}

// WithOnChange registers a callback invoked with the new message whenever it
// changes, including the empty message on clear. It runs without the lock held.
func WithOnChange(fn func(message string)) Option {
	return func(b *Banner) { b.onChange = fn }
}

func NewBanner(opts ...Option) *Banner {
	b := &Banner{after: DefaultDismissAfter}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Banner) Show(message string) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}

	b.stopLocked()
	b.seq++
	b.message = message

	if b.after > 0 {
		seq := b.seq
		b.timer = time.AfterFunc(b.after, func() { b.expire(seq) })
	}
	b.mu.Unlock()

	b.notify(message)
}

// Dismiss clears the message now.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	if b.closed || b.message == "" {
		b.mu.Unlock()
		return
	}
	b.stopLocked()
	b.seq++
	b.message = ""
	b.mu.Unlock()

	b.notify("")
}

func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

// Close cancels the pending clear. The current message is left as is.
func (b *Banner) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	b.closed = true
}

// expire clears the message if no Show or Dismiss happened since the timer
// for seq was armed.
func (b *Banner) expire(seq uint64) {
	b.mu.Lock()
	if b.closed || b.seq != seq {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	b.message = ""
	b.mu.Unlock()

	b.notify("")
}

func (b *Banner) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Banner) notify(message string) {
	if b.onChange != nil {
		b.onChange(message)
	}
}
