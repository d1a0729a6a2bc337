package robot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

func testTemplates() []robot.BuildTemplate {
	return []robot.BuildTemplate{
		{Name: "Heavy", Health: 30, Energy: 20, DodgeChance: 5, MissChance: 5, Cost: 300, Weapons: []string{"bumper", "saw"}},
		{Name: "Light", Health: 15, Energy: 20, DodgeChance: 20, MissChance: 5, Cost: 250, Weapons: []string{"spike", "laser"}},
	}
}

func TestNewCatalog_KeepsOrder(t *testing.T) {
	c, err := robot.NewCatalog(robot.DefaultWeapons(), testTemplates())
	require.NoError(t, err)

	assert.Equal(t, []string{"Heavy", "Light"}, c.BuildNames())
	assert.Equal(t, 2, c.Len())

	heavy, err := c.Template("Heavy")
	require.NoError(t, err)
	assert.Equal(t, 300, heavy.Cost)
}

func TestCatalog_TemplateNotFound(t *testing.T) {
	c, err := robot.NewCatalog(robot.DefaultWeapons(), testTemplates())
	require.NoError(t, err)

	_, err = c.Template("heavy")
	assert.True(t, errors.IsMisconfigured(err), "Template is exact and fatal")

	tmpl, ok := c.Lookup(" heavy ")
	require.True(t, ok)
	assert.Equal(t, "Heavy", tmpl.Name)

	_, ok = c.Lookup("Brute")
	assert.False(t, ok)
}

func TestNewCatalog_Validation(t *testing.T) {
	testCases := []struct {
		name      string
		templates []robot.BuildTemplate
		errMsg    string
	}{
		{
			name:      "empty catalog",
			templates: nil,
			errMsg:    "builds: is required",
		},
		{
			name: "unknown weapon",
			templates: []robot.BuildTemplate{
				{Name: "Odd", Health: 10, Energy: 10, Weapons: []string{"hammer"}},
			},
			errMsg: `unknown weapon "hammer"`,
		},
		{
			name: "empty loadout",
			templates: []robot.BuildTemplate{
				{Name: "Bare", Health: 10, Energy: 10},
			},
			errMsg: "Bare.weapons: is required",
		},
		{
			name: "chance out of range",
			templates: []robot.BuildTemplate{
				{Name: "Lucky", Health: 10, Energy: 10, DodgeChance: 120, Weapons: []string{"saw"}},
			},
			errMsg: "Lucky.dodge_chance",
		},
		{
			name: "duplicate name",
			templates: []robot.BuildTemplate{
				{Name: "Twin", Health: 10, Energy: 10, Weapons: []string{"saw"}},
				{Name: "twin", Health: 10, Energy: 10, Weapons: []string{"saw"}},
			},
			errMsg: "is defined more than once",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := robot.NewCatalog(robot.DefaultWeapons(), tc.templates)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.IsMisconfigured(err))
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestNewCatalog_CopiesLoadout(t *testing.T) {
	templates := testTemplates()
	c, err := robot.NewCatalog(robot.DefaultWeapons(), templates)
	require.NoError(t, err)

	templates[0].Weapons[0] = "laser"
	heavy, err := c.Template("Heavy")
	require.NoError(t, err)
	assert.Equal(t, "bumper", heavy.Weapons[0])
}
