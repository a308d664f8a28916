package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/leadpulse/pkg/conversation"
	"github.com/jordanlanch/leadpulse/pkg/domain"
	"github.com/jordanlanch/leadpulse/pkg/engagement"
)

func TestTracker(t *testing.T) {
	t.Run("Active leads are returned sorted", func(t *testing.T) {
		tracker := NewTracker()
		tracker.Touch("lead-b")
		tracker.Touch("lead-a")

		assert.Equal(t, []string{"lead-a", "lead-b"}, tracker.Active(time.Hour))
	})

	t.Run("Stale leads are pruned", func(t *testing.T) {
		tracker := NewTracker()
		tracker.lastSeen["old-lead"] = time.Now().Add(-48 * time.Hour)
		tracker.Touch("fresh-lead")

		assert.Equal(t, []string{"fresh-lead"}, tracker.Active(24*time.Hour))
		assert.NotContains(t, tracker.lastSeen, "old-lead")
	})

	t.Run("Empty tracker", func(t *testing.T) {
		assert.Empty(t, NewTracker().Active(time.Hour))
	})
}

func TestCronManager(t *testing.T) {
	t.Run("SetupJobs registers without error", func(t *testing.T) {
		cm := NewCronManager(nil, nil, nil)
		require.NoError(t, cm.SetupJobs())
		cm.Stop()
	})

	t.Run("Weight sweep runs clean on shipped tables", func(t *testing.T) {
		cm := NewCronManager(nil, nil, nil)
		assert.NotPanics(t, cm.RunWeightSweep)
	})

	t.Run("Engagement refresh covers active leads", func(t *testing.T) {
		store := conversation.NewMemoryStore()
		require.NoError(t, store.Append(context.Background(), "lead-1", domain.Message{
			Direction: domain.DirectionInbound,
			Channel:   domain.ChannelWhatsApp,
			Content:   "Interested, tell me more?",
			At:        time.Now(),
		}))

		cm := NewCronManager(engagement.NewService(store, nil), nil, nil)
		cm.Tracker().Touch("lead-1")

		assert.NotPanics(t, cm.RunEngagementRefresh)
	})
}
