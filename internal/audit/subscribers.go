// Package audit records account events published on the event bus.
package audit

import (
	"context"
	"time"

	"userhub/internal/domain"
	"userhub/internal/event"
	"userhub/internal/logger"
)

const recordTimeout = 2 * time.Second

// Recorder persists an audit entry. The Redis audit stream implements it.
type Recorder interface {
	Append(ctx context.Context, action string, payload any) (string, error)
}

type Subscriber struct {
	action string
	log    logger.Logger
	rec    Recorder
}

func NewSubscriber(action string, log logger.Logger, rec Recorder) *Subscriber {
	return &Subscriber{action: action, log: log, rec: rec}
}

func (s *Subscriber) Handle(evt any) {
	s.log.Info("audit: "+s.action, "event", evt)

	if s.rec == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if _, err := s.rec.Append(ctx, s.action, evt); err != nil {
		s.log.Warn("audit: failed to record event", "action", s.action, "error", err)
	}
}

// Register subscribes the audit trail to every account event. rec may be nil.
func Register(bus *event.Bus, log logger.Logger, rec Recorder) {
	bus.Subscribe(domain.EventUserRegistered{}, NewSubscriber("user.registered", log, rec).Handle)
	bus.Subscribe(domain.EventUserCreated{}, NewSubscriber("user.created", log, rec).Handle)
	bus.Subscribe(domain.EventUserDeleted{}, NewSubscriber("user.deleted", log, rec).Handle)
	bus.Subscribe(domain.EventUsersPurged{}, NewSubscriber("users.purged", log, rec).Handle)
}
