package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// EventBus is a synchronous events.EventBus for tests. It records every
// published event and runs SubscribeFunc handlers inline. Handlers added
// with Subscribe are accepted but never called.
type EventBus struct {
	mu        sync.Mutex
	published []events.Event
	handlers  map[string]subscription
	next      int
}

type subscription struct {
	eventType string
	fn        events.HandlerFunc
}

// NewEventBus creates an empty recording bus
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string]subscription)}
}

// Publish records e and hands it to every handler for its type
func (b *EventBus) Publish(ctx context.Context, e events.Event) error {
	b.mu.Lock()
	b.published = append(b.published, e)
	var fns []events.HandlerFunc
	for _, sub := range b.handlers {
		if sub.eventType == e.Type() {
			fns = append(fns, sub.fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		if err := fn(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe returns an ID but the handler is never dispatched
func (b *EventBus) Subscribe(_ string, _ events.Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	return fmt.Sprintf("sub-%d", b.next)
}

// SubscribeFunc registers fn for eventType
func (b *EventBus) SubscribeFunc(eventType string, _ int, fn events.HandlerFunc) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := fmt.Sprintf("sub-%d", b.next)
	b.handlers[id] = subscription{eventType: eventType, fn: fn}
	return id
}

// Unsubscribe removes a handler
func (b *EventBus) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.handlers[id]; !ok {
		return fmt.Errorf("subscription %s not found", id)
	}
	delete(b.handlers, id)
	return nil
}

// Clear removes every handler for eventType
func (b *EventBus) Clear(eventType string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.handlers {
		if sub.eventType == eventType {
			delete(b.handlers, id)
		}
	}
}

// ClearAll removes every handler
func (b *EventBus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[string]subscription)
}

// Published returns the events seen so far, in order
func (b *EventBus) Published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.published...)
}

// Subscribers returns the number of registered SubscribeFunc handlers
func (b *EventBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
