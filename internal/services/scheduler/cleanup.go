// -----------------------------------------------------------------------
// Upload retention scheduler - cron-driven purge of stale uploads
// -----------------------------------------------------------------------

package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/services/files"
)

// Cleanup purges uploads older than the retention window on a cron schedule
type Cleanup struct {
	cron      *cron.Cron
	files     *files.Service
	retention time.Duration
	schedule  string
	logger    arbor.ILogger
}

// NewCleanup creates the retention scheduler
func NewCleanup(cfg *common.UploadsConfig, fileService *files.Service, logger arbor.ILogger) *Cleanup {
	return &Cleanup{
		cron:      cron.New(),
		files:     fileService,
		retention: cfg.RetentionDuration(),
		schedule:  cfg.CleanupSchedule,
		logger:    logger,
	}
}

// Start registers the purge job and starts the cron loop
func (c *Cleanup) Start() error {
	if _, err := c.cron.AddFunc(c.schedule, c.purge); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", c.schedule, err)
	}
	c.cron.Start()
	c.logger.Info().
		Str("schedule", c.schedule).
		Str("retention", c.retention.String()).
		Msg("Upload cleanup scheduled")
	return nil
}

// Stop stops the cron loop and waits for a running purge to finish
func (c *Cleanup) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

// purge removes uploads older than the retention window
func (c *Cleanup) purge() {
	cutoff := time.Now().Add(-c.retention)
	stale, err := c.files.ListStale(cutoff)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Upload cleanup failed to list stale files")
		return
	}

	removed := 0
	for _, file := range stale {
		if err := c.files.Remove(file); err != nil {
			c.logger.Warn().Err(err).Str("file_id", file.ID).Msg("Failed to remove stale upload")
			continue
		}
		removed++
	}
	if removed > 0 {
		c.logger.Info().Int("removed", removed).Msg("Stale uploads purged")
	}
}
