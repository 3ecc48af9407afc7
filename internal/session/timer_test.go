package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerRemainingDerivesFromDeadline(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	now := start
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	tm := newTimer(clock, start, 30*time.Minute)
	if got := tm.remaining(); got != 30*time.Minute {
		t.Fatalf("remaining = %v, want 30m", got)
	}

	mu.Lock()
	now = start.Add(12 * time.Minute)
	mu.Unlock()
	if got := tm.remaining(); got != 18*time.Minute {
		t.Fatalf("remaining = %v, want 18m", got)
	}

	mu.Lock()
	now = start.Add(2 * time.Hour)
	mu.Unlock()
	if got := tm.remaining(); got != 0 {
		t.Fatalf("remaining = %v, want 0 (clamped)", got)
	}
}

func TestTimerExpiresExactlyOnceAndStops(t *testing.T) {
	start := time.Now()
	tm := newTimer(time.Now, start, 0)

	var expires int32
	done := make(chan struct{})
	go func() {
		tm.run(time.Millisecond, func(time.Duration) {}, func() {
			atomic.AddInt32(&expires, 1)
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not expire")
	}
	if got := atomic.LoadInt32(&expires); got != 1 {
		t.Fatalf("expire fired %d times, want 1", got)
	}
}

func TestTimerStopPreventsExpiry(t *testing.T) {
	start := time.Now()
	tm := newTimer(time.Now, start, time.Hour)

	var ticks int32
	done := make(chan struct{})
	go func() {
		tm.run(time.Millisecond, func(time.Duration) {
			atomic.AddInt32(&ticks, 1)
		}, func() {
			t.Error("expire must not fire after stop")
		})
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	tm.stop()
	tm.stop() // idempotent

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after stop")
	}
}
