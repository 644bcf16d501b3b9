// Package workers
package workers

import (
	"context"
	"time"

	"userhub/internal/domain"
	"userhub/internal/event"
	"userhub/internal/logger"
)

type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

type ManagerConfig struct {
	PurgeInterval time.Duration
	PurgeAfter    time.Duration
}

type Manager struct {
	log logger.Logger
	cfg ManagerConfig

	scheduler *Scheduler
	users     domain.UserRepository
	bus       *event.Bus
}

func NewManager(log logger.Logger, cfg ManagerConfig, scheduler *Scheduler, users domain.UserRepository, bus *event.Bus) *Manager {
	return &Manager{
		log: log,
		cfg: cfg,

		scheduler: scheduler,
		users:     users,
		bus:       bus,
	}
}

// Run starts every worker and blocks until ctx is done and they have exited.
func (m *Manager) Run(ctx context.Context) error {
	m.log.Info("worker: manager started")

	m.scheduler.RunByDuration(ctx, m.cfg.PurgeInterval, NewUserPurgeWorker(m.users, m.bus, m.log, m.cfg.PurgeAfter))

	<-ctx.Done()
	m.scheduler.Wait()

	m.log.Info("worker: manager stopped")
	return nil
}
