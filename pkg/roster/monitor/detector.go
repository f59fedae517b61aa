// Package monitor runs the background anomaly detector: a periodic sweep
// over the mutation log that flags actors writing faster than the
// configured threshold.
package monitor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/marmos91/rosterd/internal/logger"
	"github.com/marmos91/rosterd/pkg/roster/models"
)

// Config controls the detector schedule and sensitivity.
type Config struct {
	// Enabled toggles the background sweep. Default: true.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`

	// Interval is the time between sweeps. Default: 1 minute.
	Interval time.Duration `mapstructure:"interval" yaml:"interval" validate:"omitempty,min=1s"`

	// Window is how far back each sweep looks. Default: 2 minutes.
	Window time.Duration `mapstructure:"window" yaml:"window" validate:"omitempty,min=1s"`

	// Threshold is the mutation count an actor must exceed (strictly)
	// within the window to be flagged. Default: 10.
	Threshold int `mapstructure:"threshold" yaml:"threshold" validate:"omitempty,min=1"`
}

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.Enabled == nil {
		enabled := true
		c.Enabled = &enabled
	}
	if c.Interval == 0 {
		c.Interval = time.Minute
	}
	if c.Window == 0 {
		c.Window = 2 * time.Minute
	}
	if c.Threshold == 0 {
		c.Threshold = 10
	}
}

// IsEnabled returns whether the detector should run.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Store is the slice of persistence the detector needs.
type Store interface {
	ActorsExceeding(ctx context.Context, since time.Time, threshold int) ([]models.ActorMutationCount, error)
	CreateFlag(ctx context.Context, flag *models.MonitoringFlag) error
}

// Metrics records detector activity. A nil Metrics disables collection
// with zero overhead.
type Metrics interface {
	SweepCompleted()
	FlagRaised()
}

// Detector periodically scans the mutation log and records monitoring flags
// for actors exceeding the write-rate threshold. Flags are observational;
// the detector never blocks or throttles anyone.
type Detector struct {
	store    Store
	config   Config
	metrics  Metrics
	sweeping atomic.Bool

	// now is replaceable for tests.
	now func() time.Time
}

// NewDetector creates a detector. Defaults are applied to the config.
func NewDetector(st Store, config Config) *Detector {
	config.ApplyDefaults()
	return &Detector{
		store:  st,
		config: config,
		now:    time.Now,
	}
}

// SetMetrics attaches a metrics recorder. Must be called before Run.
func (d *Detector) SetMetrics(m Metrics) {
	d.metrics = m
}

// Run sweeps on the configured interval until the context is cancelled.
func (d *Detector) Run(ctx context.Context) {
	logger.Info("anomaly detector started",
		"interval", d.config.Interval.String(),
		"window", d.config.Window.String(),
		"threshold", d.config.Threshold)

	ticker := time.NewTicker(d.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("anomaly detector stopped")
			return
		case <-ticker.C:
			d.Sweep(ctx)
		}
	}
}

// Sweep performs one detection pass. If a previous sweep is still running
// the pass is skipped rather than stacked.
func (d *Detector) Sweep(ctx context.Context) {
	if !d.sweeping.CompareAndSwap(false, true) {
		logger.Warn("skipping sweep, previous sweep still running")
		return
	}
	defer d.sweeping.Store(false)

	now := d.now()
	since := now.Add(-d.config.Window)

	counts, err := d.store.ActorsExceeding(ctx, since, d.config.Threshold)
	if err != nil {
		logger.Error("sweep failed to scan mutation log", "error", err.Error())
		return
	}

	// Truncating to the interval gives every sweep of the same period the
	// same window start, which makes flag writes idempotent.
	windowStart := now.Truncate(d.config.Interval)

	for _, c := range counts {
		flag := &models.MonitoringFlag{
			ActorID:     c.ActorID,
			Reason:      fmt.Sprintf("%d mutations in %s window", c.Count, d.config.Window),
			WindowStart: windowStart,
		}
		if err := d.store.CreateFlag(ctx, flag); err != nil {
			logger.Error("failed to record monitoring flag",
				"actor_id", c.ActorID, "error", err.Error())
			continue
		}
		if d.metrics != nil {
			d.metrics.FlagRaised()
		}

		logger.Warn("actor exceeded mutation threshold",
			"actor_id", c.ActorID,
			"count", c.Count,
			"threshold", d.config.Threshold,
			"window_start", windowStart.Format(time.RFC3339))
	}

	if d.metrics != nil {
		d.metrics.SweepCompleted()
	}
}
