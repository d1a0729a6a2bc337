package console_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/cyber-pit/internal/console"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

func TestOperator_PromptReadsLines(t *testing.T) {
	out := &bytes.Buffer{}
	op := console.NewOperator(strings.NewReader("fight\n  Laser \n"), out)
	ctx := context.Background()

	line, err := op.Prompt(ctx, "fight or flee?")
	require.NoError(t, err)
	assert.Equal(t, "fight", line)

	line, err = op.Prompt(ctx, "Pick a weapon:")
	require.NoError(t, err)
	assert.Equal(t, "  Laser ", line)

	op.Say("Tank hits.")
	assert.Equal(t, "fight or flee?\n> Pick a weapon:\n> Tank hits.\n", out.String())
}

func TestOperator_EndOfInputIsCanceled(t *testing.T) {
	op := console.NewOperator(strings.NewReader(""), io.Discard)

	_, err := op.Prompt(context.Background(), "anyone?")
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))

	_, err = op.Prompt(context.Background(), "still there?")
	assert.True(t, errors.IsCanceled(err))
}

func TestOperator_PromptHonoursContext(t *testing.T) {
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()
	op := console.NewOperator(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := op.Prompt(ctx, "waiting")
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
}
