package console

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight"
)

// Sayer shows a line of text
type Sayer interface {
	Say(text string)
}

// Renderer prints fight commentary as events are published
type Renderer struct {
	bus  events.EventBus
	out  Sayer
	subs []string
}

// NewRenderer subscribes to the fight events on bus
func NewRenderer(bus events.EventBus, out Sayer) (*Renderer, error) {
	if bus == nil {
		return nil, errors.InvalidArgument("event bus is required")
	}
	if out == nil {
		return nil, errors.InvalidArgument("output is required")
	}

	r := &Renderer{bus: bus, out: out}
	for _, eventType := range []string{
		fight.EventRoundStarted,
		fight.EventAttack,
		fight.EventTurnSkipped,
		fight.EventEnded,
	} {
		r.subs = append(r.subs, bus.SubscribeFunc(eventType, 10, r.render))
	}
	return r, nil
}

func (r *Renderer) render(_ context.Context, e events.Event) error {
	if line, ok := fight.Describe(e); ok {
		r.out.Say(line)
	}
	return nil
}

// Close unsubscribes from the bus
func (r *Renderer) Close() error {
	for _, id := range r.subs {
		if err := r.bus.Unsubscribe(id); err != nil {
			return errors.Wrapf(err, "failed to unsubscribe %s", id)
		}
	}
	r.subs = nil
	return nil
}
