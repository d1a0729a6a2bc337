// Package main is the entry point for the robot pit game
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cyber-pit/internal/config"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
)

var (
	configPath string
	redisAddr  string
	seed       uint64
	logLevel   string
	prettyLogs bool
	catalogArg string
)

var rootCmd = &cobra.Command{
	Use:   "pit",
	Short: "Turn-based robot combat in the pit",
	Long:  `Buy a combat robot, send it into the pit against generated opponents and earn BTC.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logging.Setup(cfg.Log.Level, cfg.Log.Pretty, os.Stderr)
		settings = cfg
		return nil
	},
	SilenceUsage: true,
}

// settings is the loaded config, set before any subcommand runs
var settings *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&redisAddr, "redis-addr", "", "Redis address for accounts and history (empty keeps them in memory)")
	flags.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flags.StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level")
	flags.BoolVar(&prettyLogs, "pretty-logs", false, "human readable logs on stderr")
	flags.StringVar(&catalogArg, "catalog", "", "path to a robot builds file (empty uses the built-in builds)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(buildsCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig reads the config file and applies the flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr = redisAddr
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("pretty-logs") {
		cfg.Log.Pretty = prettyLogs
	}
	if flags.Changed("catalog") {
		cfg.Catalog = catalogArg
	}
	return cfg, nil
}
