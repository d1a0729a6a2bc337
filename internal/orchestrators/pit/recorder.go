package pit

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight"
)

// recordedEvents are the fight events kept in a fight's log
var recordedEvents = []string{
	fight.EventRoundStarted,
	fight.EventAttack,
	fight.EventTurnSkipped,
	fight.EventEnded,
}

// Recorder collects the commentary of the current fight from the bus
type Recorder struct {
	mu    sync.Mutex
	bus   events.EventBus
	subs  []string
	lines []string
}

// NewRecorder subscribes a recorder to every fight event on bus
func NewRecorder(bus events.EventBus) (*Recorder, error) {
	if bus == nil {
		return nil, errors.InvalidArgument("event bus is required")
	}

	r := &Recorder{bus: bus}
	for _, eventType := range recordedEvents {
		r.subs = append(r.subs, bus.SubscribeFunc(eventType, 0, r.handle))
	}
	return r, nil
}

func (r *Recorder) handle(_ context.Context, e events.Event) error {
	line, ok := fight.Describe(e)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return nil
}

// Lines returns what has been recorded since the last Reset
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Reset forgets recorded lines
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

// Close unsubscribes from the bus
func (r *Recorder) Close() error {
	for _, id := range r.subs {
		if err := r.bus.Unsubscribe(id); err != nil {
			return errors.Wrapf(err, "failed to unsubscribe %s", id)
		}
	}
	r.subs = nil
	return nil
}
