package http

import (
	"context"
	"fmt"
	"log/slog"

	"accountapp/internal/adapter/database/memory"
	"accountapp/internal/adapter/database/postgres"
	pgrepository "accountapp/internal/adapter/database/postgres/repository"
	"accountapp/internal/adapter/database/sqlite"
	sqliterepository "accountapp/internal/adapter/database/sqlite/repository"
	"accountapp/internal/adapter/http/handler"
	"accountapp/internal/adapter/http/validation"
	"accountapp/internal/core/port"
	"accountapp/internal/core/service"
	"accountapp/internal/core/util"
	"accountapp/pkg/auth"
	"accountapp/pkg/config"
)

type Container struct {
	UserStore port.UserStore
	Tokens    port.TokenIssuer

	CredentialService port.CredentialService

	AccountHandler *handler.AccountHandler
}

func NewContainer(cfg *config.AppConfig, users port.UserStore, telemetry port.Telemetry) (*Container, error) {
	tokens, err := auth.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if err != nil {
		return nil, err
	}

	validator := validation.New()

	credentialSvc := service.NewCredentialService(
		users,
		tokens,
		util.NewBcryptHasher(cfg.Auth.BcryptCost),
		validator,
		telemetry,
	)

	return &Container{
		UserStore:         users,
		Tokens:            tokens,
		CredentialService: credentialSvc,
		AccountHandler:    handler.NewAccountHandler(credentialSvc, validator),
	}, nil
}

// OpenUserStore connects the store selected by cfg.Database.Driver. The
// returned func releases it.
func OpenUserStore(ctx context.Context, cfg *config.AppConfig, telemetry port.Telemetry) (port.UserStore, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory user store, records are lost on restart")
		return memory.NewUserStore(), func() {}, nil

	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, cfg.Database.URL, cfg.MigrationsPath())

		if err != nil {
			return nil, nil, err
		}

		return pgrepository.NewUserRepository(db), db.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.NewDB(sqlite.Options{
			Path:           cfg.Database.Path,
			MigrationsPath: cfg.MigrationsPath(),
			LogQueries:     cfg.Database.LogQueries,
		})

		if err != nil {
			return nil, nil, err
		}

		return sqliterepository.NewUserRepository(db, telemetry), func() { db.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}
