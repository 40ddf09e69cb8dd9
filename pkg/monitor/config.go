package monitor

import (
	"errors"
	"time"
)

// Config holds the monitoring parameters, fixed for the process lifetime.
type Config struct {
	// AppID is the Algolia application identifier.
	AppID string

	// IndexName is the index whose record count is watched.
	IndexName string

	// ExpectedRecords is the initial baseline count. Zero means the
	// baseline is fetched from the index on startup.
	ExpectedRecords int64

	// Delay is the pause between polls.
	Delay time.Duration

	// Delta is the minimum absolute count change that triggers a report.
	Delta int64

	// AllLogs switches to printing every new build log entry each cycle
	// instead of comparing record counts.
	AllLogs bool
}

// Validate checks the configuration before the loop starts.
func (c *Config) Validate() error {
	if c.AppID == "" {
		return errors.New("application ID is required")
	}
	if c.IndexName == "" {
		return errors.New("index name is required")
	}
	if c.Delay <= 0 {
		return errors.New("delay must be at least 1 second")
	}
	if c.Delta < 0 {
		return errors.New("delta threshold must not be negative")
	}
	if c.ExpectedRecords < 0 {
		return errors.New("expected records must not be negative")
	}
	return nil
}
