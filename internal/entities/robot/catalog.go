package robot

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

// BuildTemplate is a named stat profile robots are created from.
// Templates are shared by every instance of the build and must not be
// modified after the catalog is built.
type BuildTemplate struct {
	Name        string
	Health      int
	Energy      int
	DodgeChance int
	MissChance  int
	Cost        int
	Weapons     []string
	Description string
}

// Catalog is the ordered, validated set of build templates
type Catalog struct {
	weapons   *WeaponTable
	order     []string
	templates map[string]*BuildTemplate
	folded    map[string]string
}

// NewCatalog validates templates against weapons and returns a catalog
// keeping the given order. All problems are reported at once as a
// Misconfigured error.
func NewCatalog(weapons *WeaponTable, templates []BuildTemplate) (*Catalog, error) {
	if weapons == nil {
		return nil, errors.Misconfiguredf("weapon table is required")
	}

	vb := errors.NewValidationBuilder()
	if len(templates) == 0 {
		vb.RequiredField("builds")
	}

	c := &Catalog{
		weapons:   weapons,
		templates: make(map[string]*BuildTemplate, len(templates)),
		folded:    make(map[string]string, len(templates)),
	}

	for i := range templates {
		t := templates[i]
		field := t.Name
		if strings.TrimSpace(t.Name) == "" {
			vb.Fieldf(fmt.Sprintf("builds[%d].name", i), "is required")
			continue
		}
		if _, dup := c.folded[strings.ToLower(t.Name)]; dup {
			vb.Field(field, "is defined more than once")
			continue
		}

		errors.ValidatePositive(field+".health", t.Health, vb)
		errors.ValidatePositive(field+".energy", t.Energy, vb)
		errors.ValidateRange(field+".dodge_chance", t.DodgeChance, 0, 100, vb)
		errors.ValidateRange(field+".miss_chance", t.MissChance, 0, 100, vb)
		if t.Cost < 0 {
			vb.Field(field+".cost", "cannot be negative")
		}
		if len(t.Weapons) == 0 {
			vb.RequiredField(field + ".weapons")
		}
		for _, w := range t.Weapons {
			if !weapons.Has(w) {
				vb.Fieldf(field+".weapons", "unknown weapon %q", w)
			}
		}

		t.Weapons = append([]string(nil), t.Weapons...)
		c.order = append(c.order, t.Name)
		c.templates[t.Name] = &t
		c.folded[strings.ToLower(t.Name)] = t.Name
	}

	if err := vb.BuildWithCode(errors.CodeMisconfigured); err != nil {
		return nil, err
	}

	return c, nil
}

// Weapons returns the weapon table the catalog was validated against
func (c *Catalog) Weapons() *WeaponTable {
	return c.weapons
}

// BuildNames returns build names in catalog order
func (c *Catalog) BuildNames() []string {
	return append([]string(nil), c.order...)
}

// Template returns the named build.
// Returns errors.Misconfigured if the build does not exist; callers
// holding a build name from storage or code treat this as fatal.
func (c *Catalog) Template(name string) (*BuildTemplate, error) {
	t, ok := c.templates[name]
	if !ok {
		return nil, errors.Misconfiguredf("build %q not found", name).WithMeta("build", name)
	}
	return t, nil
}

// Lookup finds a build by case-insensitive name. It is the lookup for
// operator input, where a miss is not a defect.
func (c *Catalog) Lookup(name string) (*BuildTemplate, bool) {
	canonical, ok := c.folded[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return c.templates[canonical], true
}

// Len returns the number of builds
func (c *Catalog) Len() int {
	return len(c.order)
}
