// Package event is an in-process, synchronous publish/subscribe bus keyed by
// the event's Go type.
package event

import (
	"reflect"
	"sync"

	"userhub/internal/logger"
)

type Handler func(event any)

type Bus struct {
	mu       sync.RWMutex
	handlers map[reflect.Type][]Handler
	log      logger.Logger
}

func New(log logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]Handler),
		log:      log,
	}
}

// Subscribe registers handler for events of the same type as the sample value.
func (b *Bus) Subscribe(sample any, handler Handler) {
	t := reflect.TypeOf(sample)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[t] = append(b.handlers[t], handler)
}

// Publish runs every handler for the event's type on the caller's goroutine.
// A panicking handler is logged and does not stop the others.
func (b *Bus) Publish(event any) {
	t := reflect.TypeOf(event)

	b.mu.RLock()
	handlers := b.handlers[t]
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Warn(
						"event handler panic",
						"event", t.String(),
						"panic", r,
					)
				}
			}()
			h(event)
		}()
	}
}
