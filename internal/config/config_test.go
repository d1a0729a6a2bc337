package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/cyber-pit/internal/config"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Economy.StartingBalance)
	assert.Equal(t, 50, cfg.Economy.PayoutPercent)
	assert.Equal(t, 20, cfg.Economy.HistoryLimit)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "pit.yaml", `
redis:
  addr: localhost:6379
economy:
  payout_percent: 75
seed: 42
log:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 75, cfg.Economy.PayoutPercent)
	assert.Equal(t, 500, cfg.Economy.StartingBalance)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{name: "payout over 100", body: "economy:\n  payout_percent: 101\n", want: "economy.payout_percent"},
		{name: "negative grant", body: "economy:\n  starting_balance: -5\n", want: "economy.starting_balance"},
		{name: "not yaml", body: "economy: [", want: "failed to parse config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "pit.yaml", tc.body))
			require.Error(t, err)
			assert.True(t, errors.IsMisconfigured(err))
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsMisconfigured(err))
}
