package config

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

//go:embed builds.yaml
var defaultCatalog []byte

// DefaultCatalog returns the catalog compiled into the binary
func DefaultCatalog() (*robot.Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog file. An empty path means the default catalog.
func LoadCatalog(path string) (*robot.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMisconfigured, "failed to read catalog file").
			WithMeta("path", path)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a validated catalog from YAML. Without a weapons
// section the default weapon table is used.
func ParseCatalog(data []byte) (*robot.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMisconfigured, "failed to parse catalog")
	}

	weapons := robot.DefaultWeapons()
	if len(file.Weapons) > 0 {
		var err error
		weapons, err = robot.NewWeaponTable(file.Weapons)
		if err != nil {
			return nil, errors.Wrap(err, "invalid weapon table")
		}
	}

	catalog, err := robot.NewCatalog(weapons, file.Builds)
	if err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}
	return catalog, nil
}

type catalogFile struct {
	Weapons map[string]int `yaml:"weapons"`
	Builds  buildList      `yaml:"builds"`
}

type buildEntry struct {
	Health      int      `yaml:"health"`
	Energy      int      `yaml:"energy"`
	DodgeChance int      `yaml:"dodge_chance"`
	MissChance  int      `yaml:"miss_chance"`
	Cost        int      `yaml:"cost"`
	Weapons     []string `yaml:"weapons"`
	Desc        string   `yaml:"desc"`
}

// buildList decodes a name keyed mapping in document order
type buildList []robot.BuildTemplate

func (l *buildList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Misconfiguredf("builds must be a mapping of build name to stats, line %d", value.Line)
	}

	out := make(buildList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i], value.Content[i+1]

		var entry buildEntry
		if err := body.Decode(&entry); err != nil {
			return errors.WrapWithCode(err, errors.CodeMisconfigured, "failed to decode build "+key.Value)
		}
		out = append(out, robot.BuildTemplate{
			Name:        key.Value,
			Health:      entry.Health,
			Energy:      entry.Energy,
			DodgeChance: entry.DodgeChance,
			MissChance:  entry.MissChance,
			Cost:        entry.Cost,
			Weapons:     entry.Weapons,
			Description: entry.Desc,
		})
	}
	*l = out
	return nil
}
