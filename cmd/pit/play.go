package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cyber-pit/internal/console"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/clock"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/idgen"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/namegen"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/rng"
	"github.com/KirkDiggler/cyber-pit/internal/services/user"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Log in and play on this terminal",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.For("pit")

	a, err := newApp(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close storage")
		}
	}()

	roller := rng.NewSeeded(settings.Seed)
	logger.Info().Uint64("seed", roller.Seed()).Msg("random source ready")

	names, err := namegen.New(roller)
	if err != nil {
		return errors.Wrap(err, "failed to create name generator")
	}

	users, err := user.New(&user.Config{
		Repository:      a.accounts,
		Catalog:         a.catalog,
		Roller:          roller,
		StartingBalance: settings.Economy.StartingBalance,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create user service")
	}

	session, err := console.NewSession(&console.Config{
		Operator:      console.NewOperator(cmd.InOrStdin(), cmd.OutOrStdout()),
		Users:         users,
		Catalog:       a.catalog,
		Records:       a.records,
		EventBus:      events.NewBus(),
		Roller:        roller,
		Names:         names,
		FightIDs:      idgen.NewUUID(idgen.PrefixFight),
		RobotIDs:      idgen.NewUUID(idgen.PrefixRobot),
		Clock:         clock.New(),
		PayoutPercent: settings.Economy.PayoutPercent,
		HistoryLimit:  settings.Economy.HistoryLimit,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	return session.Run(ctx)
}
