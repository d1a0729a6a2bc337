package robot

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

// Results of UseWeapon that are not damage
const (
	// InsufficientEnergy means the attack was refused and nothing changed
	InsufficientEnergy = -1
	// Missed means energy was spent but no damage was dealt
	Missed = 0
)

// Robot name limits, in characters
const (
	MinNameLength = 1
	MaxNameLength = 15
)

// EntityType is the core.Entity type of every robot instance
const EntityType = "robot"

// InstanceConfig holds what a robot instance is built from
type InstanceConfig struct {
	ID       string
	Name     string
	Template *BuildTemplate
	Weapons  *WeaponTable
	Roller   dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *InstanceConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", c.ID, vb)
	errors.ValidateLength("Name", c.Name, MinNameLength, MaxNameLength, vb)
	if c.Template == nil {
		vb.RequiredField("Template")
	}
	if c.Weapons == nil {
		vb.RequiredField("Weapons")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

// Instance is the mutable battle state of one robot
type Instance struct {
	id       string
	name     string
	template *BuildTemplate
	weapons  *WeaponTable
	roller   dice.Roller

	health int
	energy int
}

var _ core.Entity = (*Instance)(nil)

// NewInstance creates a robot at its template's base health and energy
func NewInstance(cfg *InstanceConfig) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid robot")
	}

	return &Instance{
		id:       cfg.ID,
		name:     cfg.Name,
		template: cfg.Template,
		weapons:  cfg.Weapons,
		roller:   cfg.Roller,
		health:   cfg.Template.Health,
		energy:   cfg.Template.Energy,
	}, nil
}

// GetID returns the robot's ID
func (r *Instance) GetID() string {
	return r.id
}

// GetType returns the entity type
func (r *Instance) GetType() string {
	return EntityType
}

// Name returns the robot's name
func (r *Instance) Name() string {
	return r.name
}

// Template returns the build the robot was created from
func (r *Instance) Template() *BuildTemplate {
	return r.template
}

// Health returns current health. It can be negative.
func (r *Instance) Health() int {
	return r.health
}

// Energy returns current energy
func (r *Instance) Energy() int {
	return r.energy
}

// TakeDamage applies an incoming hit unless the robot dodges it.
// Returns false on a dodge.
func (r *Instance) TakeDamage(amount int) (bool, error) {
	roll, err := r.roller.Roll(100)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll dodge")
	}
	if roll < r.template.DodgeChance {
		return false, nil
	}
	r.health -= amount
	return true, nil
}

// UseWeapon spends the weapon's energy and rolls for a miss. It returns
// InsufficientEnergy without touching state when the weapon is too
// expensive, Missed when the roll fails, and otherwise the damage to
// hand to the defender's TakeDamage.
func (r *Instance) UseWeapon(weapon string) (int, error) {
	cost, err := r.weapons.Cost(weapon)
	if err != nil {
		return 0, err
	}
	if r.energy < cost {
		return InsufficientEnergy, nil
	}

	r.energy -= cost
	roll, err := r.roller.Roll(100)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll miss")
	}
	if roll < r.template.MissChance {
		return Missed, nil
	}
	return cost, nil
}

// IsExhausted reports whether no weapon in the loadout is affordable
func (r *Instance) IsExhausted() bool {
	minCost := -1
	for _, w := range r.template.Weapons {
		cost, err := r.weapons.Cost(w)
		if err != nil {
			continue
		}
		if minCost < 0 || cost < minCost {
			minCost = cost
		}
	}
	return minCost < 0 || r.energy < minCost
}

// IsDestroyed reports whether health has reached zero
func (r *Instance) IsDestroyed() bool {
	return r.health <= 0
}

// WeaponCost returns the energy cost of weapon
func (r *Instance) WeaponCost(weapon string) (int, error) {
	return r.weapons.Cost(weapon)
}

// Equipped reports whether weapon is in the loadout
func (r *Instance) Equipped(weapon string) bool {
	for _, w := range r.template.Weapons {
		if w == weapon {
			return true
		}
	}
	return false
}

// Affordable returns the loadout weapons the robot can currently pay
// for, in loadout order
func (r *Instance) Affordable() []string {
	var out []string
	for _, w := range r.template.Weapons {
		cost, err := r.weapons.Cost(w)
		if err == nil && cost <= r.energy {
			out = append(out, w)
		}
	}
	return out
}

// Reset restores base health and energy
func (r *Instance) Reset() {
	r.health = r.template.Health
	r.energy = r.template.Energy
}
