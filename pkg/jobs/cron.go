package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/robfig/cron/v3"

	"github.com/jordanlanch/leadpulse/pkg/engagement"
	"github.com/jordanlanch/leadpulse/pkg/logger"
	"github.com/jordanlanch/leadpulse/pkg/scoring"
)

// CronManager manages scheduled maintenance jobs.
type CronManager struct {
	cron       *cron.Cron
	engagement *engagement.Service
	tracker    *Tracker
	logger     logger.Logger
}

// NewCronManager creates a new cron manager.
func NewCronManager(eng *engagement.Service, tracker *Tracker, log logger.Logger) *CronManager {
	if log == nil {
		log = logger.Default()
	}
	if tracker == nil {
		tracker = NewTracker()
	}

	return &CronManager{
		cron:       cron.New(),
		engagement: eng,
		tracker:    tracker,
		logger:     log,
	}
}

// Tracker returns the activity tracker handlers record into.
func (cm *CronManager) Tracker() *Tracker {
	return cm.tracker
}

// SetupJobs configures all scheduled jobs.
func (cm *CronManager) SetupJobs() error {
	// Daily at 2 AM: weight table sweep. A table that drifts from 100
	// skews every score for its vertical, so operators hear about it.
	_, err := cm.cron.AddFunc("0 2 * * *", cm.RunWeightSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule weight sweep: %w", err)
	}

	// Hourly: refresh engagement patterns for active conversations.
	_, err = cm.cron.AddFunc("@hourly", cm.RunEngagementRefresh)
	if err != nil {
		return fmt.Errorf("failed to schedule engagement refresh: %w", err)
	}

	cm.logger.Info("cron jobs configured",
		"weight_sweep", "daily 02:00", "engagement_refresh", "hourly")
	return nil
}

// RunWeightSweep validates every industry weight table and reports the
// ones that no longer sum to 100. Exported for manual triggering.
func (cm *CronManager) RunWeightSweep() {
	warnings := scoring.ValidateTables()
	if len(warnings) == 0 {
		cm.logger.Debug("weight sweep clean")
		return
	}

	for _, w := range warnings {
		cm.logger.Warn("weight table does not sum to 100",
			"industry", w.Industry, "sum", w.Sum)
		sentry.CaptureMessage(fmt.Sprintf("weight table %s sums to %d", w.Industry, w.Sum))
	}
}

// RunEngagementRefresh recomputes engagement patterns for leads with
// recent conversation activity.
func (cm *CronManager) RunEngagementRefresh() {
	if cm.engagement == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	active := cm.tracker.Active(24 * time.Hour)
	for _, leadID := range active {
		pattern, err := cm.engagement.ComputeEngagementPattern(ctx, leadID)
		if err != nil {
			cm.logger.Warn("engagement refresh failed", "lead_id", leadID, "error", err)
			continue
		}
		cm.logger.Debug("engagement refreshed", "lead_id", leadID, "level", pattern.Level)
	}

	if len(active) > 0 {
		cm.logger.Info("engagement refresh completed", "leads", len(active))
	}
}

// Start starts the cron scheduler.
func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop stops the cron scheduler.
func (cm *CronManager) Stop() {
	cm.cron.Stop()
}
