package workers

import (
	"context"
	"fmt"
	"time"

	"userhub/internal/domain"
	"userhub/internal/event"
	"userhub/internal/logger"
)

// UserPurgeWorker hard-deletes users that were soft-deleted more than
// retention ago.
type UserPurgeWorker struct {
	users     domain.UserRepository
	bus       *event.Bus
	log       logger.Logger
	retention time.Duration
	now       func() time.Time
}

func NewUserPurgeWorker(users domain.UserRepository, bus *event.Bus, log logger.Logger, retention time.Duration) *UserPurgeWorker {
	return &UserPurgeWorker{
		users:     users,
		bus:       bus,
		log:       log,
		retention: retention,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (w *UserPurgeWorker) Name() string {
	return "user_purge"
}

func (w *UserPurgeWorker) Run(ctx context.Context) error {
	cutoff := w.now().Add(-w.retention)

	n, err := w.users.PurgeDeleted(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge deleted users: %w", err)
	}

	if n > 0 {
		w.log.Info("worker: purged deleted users", "count", n, "before", cutoff)
		if w.bus != nil {
			w.bus.Publish(domain.EventUsersPurged{Count: n})
		}
	}

	return nil
}
