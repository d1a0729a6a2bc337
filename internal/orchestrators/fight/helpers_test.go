package fight_test

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight"
)

// recordingBus keeps every published event in order
type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.published = append(b.published, e)
	return nil
}
func (b *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingBus) Unsubscribe(_ string) error { return nil }
func (b *recordingBus) Clear(_ string)             {}
func (b *recordingBus) ClearAll()                  {}

func (b *recordingBus) attacks() []*fight.AttackEvent {
	var out []*fight.AttackEvent
	for _, e := range b.published {
		if a, ok := e.(*fight.AttackEvent); ok {
			out = append(out, a)
		}
	}
	return out
}

func (b *recordingBus) skipped() []*fight.TurnSkippedEvent {
	var out []*fight.TurnSkippedEvent
	for _, e := range b.published {
		if sk, ok := e.(*fight.TurnSkippedEvent); ok {
			out = append(out, sk)
		}
	}
	return out
}

func (b *recordingBus) ended() *fight.EndedEvent {
	for _, e := range b.published {
		if end, ok := e.(*fight.EndedEvent); ok {
			return end
		}
	}
	return nil
}

// scriptOperator answers prompts from a fixed list of lines
type scriptOperator struct {
	lines   []string
	prompts []string
	said    []string
}

func (o *scriptOperator) Prompt(_ context.Context, text string) (string, error) {
	o.prompts = append(o.prompts, text)
	if len(o.lines) == 0 {
		return "", errors.Canceled("operator went away")
	}
	line := o.lines[0]
	o.lines = o.lines[1:]
	return line, nil
}

func (o *scriptOperator) Say(text string) {
	o.said = append(o.said, text)
}

// autopilot accepts the challenge, then always picks the first weapon its
// robot can afford
type autopilot struct {
	robot    *robot.Instance
	accepted bool
}

func (a *autopilot) Prompt(_ context.Context, _ string) (string, error) {
	if !a.accepted {
		a.accepted = true
		return fight.TokenFight, nil
	}
	choices := a.robot.Affordable()
	if len(choices) == 0 {
		return "", errors.Internal("prompted while exhausted")
	}
	return choices[0], nil
}

func (a *autopilot) Say(string) {}

// purse is a Wallet that never fails
type purse struct {
	credited int
}

func (p *purse) Credit(_ context.Context, amount int) error {
	p.credited += amount
	return nil
}

func newRobot(id string, tmpl robot.BuildTemplate, roller dice.Roller) *robot.Instance {
	r, err := robot.NewInstance(&robot.InstanceConfig{
		ID:       id,
		Name:     id,
		Template: &tmpl,
		Weapons:  robot.DefaultWeapons(),
		Roller:   roller,
	})
	if err != nil {
		panic(err)
	}
	return r
}
