package services

import (
	"sync"
	"time"
)

// TapCounter is the secret admin-entry gate: tapping the tagline enough
// times inside the window reveals the admin console. It is a small state
// machine — Idle, then Counting(n) while taps keep arriving, back to Idle
// when the window elapses or the threshold unlocks.
type TapCounter struct {
	mu        sync.Mutex
	threshold int
	window    time.Duration
	count     int
	lastTap   time.Time
	now       func() time.Time
}

// NewTapCounter creates a tap counter that unlocks after threshold taps,
// each landing within window of the previous one.
func NewTapCounter(threshold int, window time.Duration) *TapCounter {
	return &TapCounter{
		threshold: threshold,
		window:    window,
		now:       time.Now,
	}
}

// Tap records one tap and reports whether the gate unlocked. An unlock
// resets the counter to Idle.
func (t *TapCounter) Tap() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if t.count > 0 && now.Sub(t.lastTap) > t.window {
		t.count = 0
	}

	t.count++
	t.lastTap = now

	if t.count >= t.threshold {
		t.count = 0
		return true
	}
	return false
}

// Count returns the current tap count, expiring a stale run first.
func (t *TapCounter) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count > 0 && t.now().Sub(t.lastTap) > t.window {
		t.count = 0
	}
	return t.count
}
