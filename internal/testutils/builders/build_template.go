// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
)

// BuildTemplateBuilder provides a fluent interface for building test templates
type BuildTemplateBuilder struct {
	tmpl robot.BuildTemplate
}

// NewBuildTemplateBuilder creates a builder for a sure-hit build: no dodge,
// no miss, a spike only loadout
func NewBuildTemplateBuilder(name string) *BuildTemplateBuilder {
	return &BuildTemplateBuilder{
		tmpl: robot.BuildTemplate{
			Name:        name,
			Health:      20,
			Energy:      20,
			Cost:        100,
			Weapons:     []string{robot.WeaponSpike},
			Description: name + " test build",
		},
	}
}

// WithHealth sets base health
func (b *BuildTemplateBuilder) WithHealth(health int) *BuildTemplateBuilder {
	b.tmpl.Health = health
	return b
}

// WithEnergy sets base energy
func (b *BuildTemplateBuilder) WithEnergy(energy int) *BuildTemplateBuilder {
	b.tmpl.Energy = energy
	return b
}

// WithChances sets the dodge and miss percentages
func (b *BuildTemplateBuilder) WithChances(dodge, miss int) *BuildTemplateBuilder {
	b.tmpl.DodgeChance = dodge
	b.tmpl.MissChance = miss
	return b
}

// WithCost sets the shop price
func (b *BuildTemplateBuilder) WithCost(cost int) *BuildTemplateBuilder {
	b.tmpl.Cost = cost
	return b
}

// WithWeapons replaces the loadout
func (b *BuildTemplateBuilder) WithWeapons(weapons ...string) *BuildTemplateBuilder {
	b.tmpl.Weapons = weapons
	return b
}

// Build returns the template
func (b *BuildTemplateBuilder) Build() robot.BuildTemplate {
	t := b.tmpl
	t.Weapons = append([]string(nil), b.tmpl.Weapons...)
	return t
}
