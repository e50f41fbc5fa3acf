package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Reaper periodically closes idle sessions.
type Reaper struct {
	registry *Registry
	idle     time.Duration
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron
}

func NewReaper(r *Registry, idle time.Duration, schedule string, logger *slog.Logger) *Reaper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reaper{
		registry: r,
		idle:     idle,
		schedule: schedule,
		logger:   logger.With("component", "reaper"),
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start registers the reap job and starts the scheduler. schedule uses the
// six-field cron format, e.g. "0 */1 * * * *".
func (p *Reaper) Start() error {
	if _, err := p.cron.AddFunc(p.schedule, p.RunOnce); err != nil {
		return fmt.Errorf("schedule reaper %q: %w", p.schedule, err)
	}
	p.cron.Start()
	p.logger.Info("reaper started", "schedule", p.schedule, "idle", p.idle)
	return nil
}

func (p *Reaper) RunOnce() {
	if n := p.registry.Reap(p.idle); n > 0 {
		p.logger.Info("reaped idle sessions", "count", n, "open", p.registry.Len())
	}
}

// Stop halts the scheduler and waits for a running reap to finish.
func (p *Reaper) Stop() {
	<-p.cron.Stop().Done()
}
