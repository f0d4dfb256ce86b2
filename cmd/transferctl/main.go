package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	appRepos "github.com/yigit/creditbridge/internal/app/repositories"
	"github.com/yigit/creditbridge/internal/bootstrap"
	"github.com/yigit/creditbridge/internal/cli"
	"github.com/yigit/creditbridge/internal/pkg/logger"
	"github.com/yigit/creditbridge/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, loadRuntime); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadRuntime wires the same store, engine and notifier the API uses.
func loadRuntime(configPath string) (*cli.Runtime, error) {
	cfg, _, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	// Tables go to stdout, so logs move to stderr.
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: true,
		Output: os.Stderr,
	})
	lgr := log.Logger

	database, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	// Feed subscribers live in the API process.
	cfg.Notification.LiveFeed = false
	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, err
	}

	return &cli.Runtime{
		Resolution: deps.ResolutionService,
		Catalog:    deps.CatalogService,
		Migrate: func(ctx context.Context) error {
			if err := bootstrap.RunMigrations(ctx, database, lgr); err != nil {
				return err
			}
			return seed.CreateDefaultData(ctx, database.Pool, appRepos.NewPostgresStore(database), cfg, lgr)
		},
		Close: database.Close,
	}, nil
}
