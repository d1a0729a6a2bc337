package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/cyber-pit/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	g := idgen.NewUUID(idgen.PrefixFight)

	a, b := g.Generate(), g.Generate()
	assert.True(t, strings.HasPrefix(a, "fight_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, idgen.NewUUID("").Generate(), 36)
}

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential(idgen.PrefixRobot)
	assert.Equal(t, "robot_1", g.Generate())
	assert.Equal(t, "robot_2", g.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}
