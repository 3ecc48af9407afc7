package session

import (
	"sync"
	"time"
)

// timer derives remaining time from a fixed deadline instead of counting
// down in memory, so a session that reloads mid-attempt reconstructs the
// true remaining time. It emits ticks at a fixed interval and signals
// expiry exactly once, then stops itself.
type timer struct {
	now      func() time.Time
	deadline time.Time

	stopOnce sync.Once
	stopped  chan struct{}
}

func newTimer(now func() time.Time, startedAt time.Time, duration time.Duration) *timer {
	return &timer{
		now:      now,
		deadline: startedAt.Add(duration),
		stopped:  make(chan struct{}),
	}
}

// remaining is the time left until the deadline, floored at zero.
func (t *timer) remaining() time.Duration {
	left := t.deadline.Sub(t.now())
	if left < 0 {
		return 0
	}
	return left
}

// run ticks until the deadline passes or stop is called. onExpire is called
// at most once, after the final zero tick.
func (t *timer) run(interval time.Duration, onTick func(remaining time.Duration), onExpire func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopped:
			return
		case <-ticker.C:
			left := t.remaining()
			onTick(left)
			if left <= 0 {
				onExpire()
				return
			}
		}
	}
}

func (t *timer) stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}
