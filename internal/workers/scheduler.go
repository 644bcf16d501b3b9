package workers

import (
	"context"
	"sync"
	"time"

	"userhub/internal/logger"
)

type Scheduler struct {
	log logger.Logger
	wg  sync.WaitGroup
}

func NewScheduler(log logger.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// RunByDuration runs worker every dur until ctx is done.
func (s *Scheduler) RunByDuration(ctx context.Context, dur time.Duration, worker Worker) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(dur)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx, worker)
			}
		}
	}()
}

// Wait blocks until every scheduled worker has stopped.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runOnce(ctx context.Context, worker Worker) {
	start := time.Now()

	err := worker.Run(ctx)
	if err != nil {
		s.log.Error("worker failed", "name", worker.Name(), "error", err)
	}

	s.log.Debug("worker finished", "name", worker.Name(), "time", time.Since(start))
}
