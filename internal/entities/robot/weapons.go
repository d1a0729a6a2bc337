// Package robot holds the robot data model: the weapon table, the build
// catalog and the mutable battle state of a single robot.
package robot

import (
	"sort"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

// Weapon identifiers shipped with the default table
const (
	WeaponLaser        = "laser"
	WeaponBumper       = "bumper"
	WeaponSaw          = "saw"
	WeaponFlipper      = "flipper"
	WeaponPlasmaGun    = "plasma_gun"
	WeaponFlameThrower = "flame_thrower"
	WeaponSpike        = "spike"
)

// WeaponTable maps a weapon identifier to its energy cost. The cost is
// also the damage a landed hit deals.
type WeaponTable struct {
	costs map[string]int
}

// NewWeaponTable validates costs and returns a table. The map is copied.
func NewWeaponTable(costs map[string]int) (*WeaponTable, error) {
	vb := errors.NewValidationBuilder()
	if len(costs) == 0 {
		vb.RequiredField("weapons")
	}

	table := make(map[string]int, len(costs))
	for name, cost := range costs {
		if name == "" {
			vb.Field("weapons", "identifier cannot be empty")
			continue
		}
		errors.ValidatePositive("weapons."+name, cost, vb)
		table[name] = cost
	}

	if err := vb.BuildWithCode(errors.CodeMisconfigured); err != nil {
		return nil, err
	}

	return &WeaponTable{costs: table}, nil
}

// DefaultWeapons returns the standard seven weapon table
func DefaultWeapons() *WeaponTable {
	return &WeaponTable{costs: map[string]int{
		WeaponLaser:        6,
		WeaponBumper:       3,
		WeaponSaw:          4,
		WeaponFlipper:      7,
		WeaponPlasmaGun:    12,
		WeaponFlameThrower: 9,
		WeaponSpike:        2,
	}}
}

// Cost returns the energy cost of weapon.
// Returns errors.Misconfigured if the weapon is not in the table.
func (t *WeaponTable) Cost(weapon string) (int, error) {
	cost, ok := t.costs[weapon]
	if !ok {
		return 0, errors.Misconfiguredf("unknown weapon %q", weapon).WithMeta("weapon", weapon)
	}
	return cost, nil
}

// Has reports whether weapon is in the table
func (t *WeaponTable) Has(weapon string) bool {
	_, ok := t.costs[weapon]
	return ok
}

// Names returns all identifiers, sorted
func (t *WeaponTable) Names() []string {
	names := make([]string, 0, len(t.costs))
	for name := range t.costs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
