package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/logging"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/repository/sqlite"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "trivia",
	Short:        "Trivia question and quiz API",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML configuration file")
}

// store is the storage backend selected by configuration
type store interface {
	Questions() domain.QuestionRepository
	Categories() domain.CategoryRepository
	Migrate(ctx context.Context) error
	Seed(ctx context.Context, categories []domain.Category, questions []domain.Question) (domain.SeedResult, error)
	Close() error
}

// setup loads the configuration and builds the application logger
func setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New("trivia", cfg.Server.LogLevel, os.Stdout)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openStore connects to the configured storage backend
func openStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		st, err := sqlite.NewStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Infof("using sqlite store at %s", cfg.Store.SQLitePath)
		return st, nil
	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		logger.Infof("using postgres store at %s:%s/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		return postgres.NewStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
