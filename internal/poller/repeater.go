package poller

import (
	"context"
	"sync"
	"time"
)

// Repeater spaces repeated requests: the first call passes at once, the next ones wait
// until interval has passed since the previous call was let through.
type Repeater struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewRepeater(interval time.Duration) *Repeater {
	return &Repeater{interval: interval}
}

// Wait blocks until the next request may be sent or ctx is done.
func (r *Repeater) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.last.IsZero() {
		delay := r.interval - time.Since(r.last)
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	r.last = time.Now()

	return nil
}
