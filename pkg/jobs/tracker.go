package jobs

import (
	"sort"
	"sync"
	"time"
)

// Tracker remembers which leads have had conversation activity recently so
// the hourly refresh only touches live conversations.
type Tracker struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// NewTracker creates an empty activity tracker.
func NewTracker() *Tracker {
	return &Tracker{lastSeen: make(map[string]time.Time)}
}

// Touch records activity for a lead.
func (t *Tracker) Touch(leadID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen[leadID] = time.Now()
}

// Active returns the leads seen within the window, sorted for stable
// processing order. Entries older than the window are pruned.
func (t *Tracker) Active(window time.Duration) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-window)
	var active []string
	for leadID, seen := range t.lastSeen {
		if seen.Before(cutoff) {
			delete(t.lastSeen, leadID)
			continue
		}
		active = append(active, leadID)
	}
	sort.Strings(active)
	return active
}
