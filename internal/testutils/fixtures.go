package testutils

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

// TestRobotName is the default player robot name for fixtures
const TestRobotName = "Tank"

// NewTestCatalog builds a catalog on the default weapon table
func NewTestCatalog(t *testing.T, templates ...robot.BuildTemplate) *robot.Catalog {
	t.Helper()
	catalog, err := robot.NewCatalog(robot.DefaultWeapons(), templates)
	require.NoError(t, err)
	return catalog
}

// NewTestRobot creates a robot from a catalog build
func NewTestRobot(t *testing.T, catalog *robot.Catalog, build, id string, roller dice.Roller) *robot.Instance {
	t.Helper()
	tmpl, err := catalog.Template(build)
	require.NoError(t, err)

	r, err := robot.NewInstance(&robot.InstanceConfig{
		ID:       id,
		Name:     TestRobotName,
		Template: tmpl,
		Weapons:  catalog.Weapons(),
		Roller:   roller,
	})
	require.NoError(t, err)
	return r
}

// ScriptedOperator answers prompts from Lines in order and records
// everything it was shown. Running out of lines reads as closed input.
type ScriptedOperator struct {
	Lines   []string
	Prompts []string
	Said    []string
}

// Prompt returns the next scripted line
func (o *ScriptedOperator) Prompt(_ context.Context, text string) (string, error) {
	o.Prompts = append(o.Prompts, text)
	if len(o.Lines) == 0 {
		return "", errors.Canceled("input closed")
	}
	line := o.Lines[0]
	o.Lines = o.Lines[1:]
	return line, nil
}

// Say records text
func (o *ScriptedOperator) Say(text string) {
	o.Said = append(o.Said, text)
}
