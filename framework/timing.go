package framework

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Delay waits for the given duration, returning early with the context's
// error if it is cancelled first.
func Delay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FailTimer signals a timeout failure after a fixed duration unless it is
// cancelled first. Cancelling strictly before the duration elapses
// guarantees the failure is never delivered; cancelling after it has already
// elapsed has no effect, since the failure has already been signaled.
type FailTimer struct {
	expired   chan error
	timer     *time.Timer
	fired     bool
	cancelled bool
	lock      sync.Mutex
}

// FailAfter starts a FailTimer for the given duration.
func FailAfter(d time.Duration) *FailTimer {
	f := &FailTimer{expired: make(chan error, 1)}
	f.timer = time.AfterFunc(d, func() {
		f.lock.Lock()
		if !f.cancelled {
			f.fired = true
			f.expired <- fmt.Errorf("timed out after %s", d)
		}
		f.lock.Unlock()
	})
	return f
}

// Expired receives the timeout failure once the duration elapses. It never
// receives anything if Cancel was called first.
func (f *FailTimer) Expired() <-chan error {
	return f.expired
}

// Cancel stops the timer. Safe to call more than once, and a no-op if the
// failure has already fired.
func (f *FailTimer) Cancel() {
	f.lock.Lock()
	if !f.fired && !f.cancelled {
		f.cancelled = true
		f.timer.Stop()
	}
	f.lock.Unlock()
}
