package remotecache

import (
	"github.com/go-co-op/gocron/v2"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/zerr"
)

// Start schedules the periodic eviction sweep. Calling Start on a running
// cache is a no-op.
func (c *Cache) Start() error {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	if c.scheduler != nil {
		return nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return zerr.Wrap(err, domain.ErrSweepStartFailed.Error())
	}

	_, err = s.NewJob(
		gocron.DurationJob(c.sweepInterval),
		gocron.NewTask(func() { c.EvictExpired() }),
		gocron.WithName("cache-eviction"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return zerr.With(zerr.Wrap(err, domain.ErrSweepStartFailed.Error()), "interval", c.sweepInterval.String())
	}

	s.Start()
	c.scheduler = s
	c.logger.Debug("cache sweep started", "interval", c.sweepInterval.String(), "window", c.window.String())

	return nil
}

// Stop cancels the eviction sweep.
func (c *Cache) Stop() error {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	if c.scheduler == nil {
		return nil
	}

	err := c.scheduler.Shutdown()
	c.scheduler = nil
	if err != nil {
		return zerr.Wrap(err, "failed to stop cache sweep")
	}
	return nil
}
