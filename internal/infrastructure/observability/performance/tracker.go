package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and keeps a bounded history of
// completed operations.
type Tracker struct {
	markers map[string]*Marker
	mu      sync.RWMutex
	started time.Time
	config  *TrackerConfig
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers int `json:"maxMarkers"` // Maximum number of markers to retain
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers: 10000,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
		config:  config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true, // Assume success until proven otherwise
	}

	markerID := fmt.Sprintf("%s_%d", operation, time.Now().UnixNano())

	t.mu.Lock()
	if len(t.markers) >= t.config.MaxMarkers {
		t.evictOldestLocked()
	}
	t.markers[markerID] = marker
	t.mu.Unlock()

	return marker
}

// CompletedOperations returns the number of completed markers currently held.
func (t *Tracker) CompletedOperations() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, m := range t.markers {
		if m.Completed {
			count++
		}
	}
	return count
}

// Uptime returns how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}

func (t *Tracker) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, m := range t.markers {
		if oldestID == "" || m.StartTime.Before(oldest) {
			oldestID = id
			oldest = m.StartTime
		}
	}
	if oldestID != "" {
		delete(t.markers, oldestID)
	}
}
