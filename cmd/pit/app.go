package main

import (
	"context"

	"github.com/KirkDiggler/cyber-pit/internal/config"
	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/clock"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
	redisclient "github.com/KirkDiggler/cyber-pit/internal/redis"
	accountrepo "github.com/KirkDiggler/cyber-pit/internal/repositories/account"
	fightrecord "github.com/KirkDiggler/cyber-pit/internal/repositories/fight_record"
)

// app holds the storage and catalog every subcommand shares
type app struct {
	catalog  *robot.Catalog
	accounts accountrepo.Repository
	records  fightrecord.Repository
	client   redisclient.Client
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := logging.For("pit")

	catalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Addr == "" {
		logger.Info().Msg("no redis address, keeping accounts in memory")
		return &app{
			catalog:  catalog,
			accounts: accountrepo.NewInMemoryRepository(clock.New()),
			records:  fightrecord.NewInMemoryRepository(cfg.Economy.HistoryLimit),
		}, nil
	}

	client, err := redisclient.NewClient(cfg.Redis.Addr, &redisclient.Options{DB: cfg.Redis.DB})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}
	if err := redisclient.Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	accounts, err := accountrepo.NewRedisRepository(&accountrepo.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to create account repository")
	}

	records, err := fightrecord.NewRedisRepository(&fightrecord.Config{
		Client:     client,
		MaxPerUser: cfg.Economy.HistoryLimit,
	})
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to create fight record repository")
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis storage")
	return &app{
		catalog:  catalog,
		accounts: accounts,
		records:  records,
		client:   client,
	}, nil
}

func loadCatalog(path string) (*robot.Catalog, error) {
	if path == "" {
		return config.DefaultCatalog()
	}
	return config.LoadCatalog(path)
}

// Close releases the redis connection, if any
func (a *app) Close() error {
	if a.client == nil {
		return nil
	}
	if err := a.client.Close(); err != nil {
		return errors.Wrap(err, "failed to close redis client")
	}
	return nil
}
