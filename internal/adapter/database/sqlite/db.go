package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Masterminds/squirrel"

	_ "github.com/mattn/go-sqlite3"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/rs/zerolog"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
)

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

type Options struct {
	Path           string
	MigrationsPath string
	LogQueries     bool
}

// Open runs pending migrations on Path and returns a traced connection pool.
func Open(opts Options) (*sql.DB, error) {
	if opts.Path == "" {
		opts.Path = "database.db"
	}

	if opts.MigrationsPath == "" {
		opts.MigrationsPath = "db/migrations/sqlite"
	}

	migrationDB, err := sql.Open("sqlite3", opts.Path)

	if err != nil {
		return nil, fmt.Errorf("open sqlite for migrations: %w", err)
	}

	err = RunMigrations(migrationDB, opts.MigrationsPath)
	migrationDB.Close()

	if err != nil {
		return nil, err
	}

	sqlDB, err := otelsql.Open("sqlite3", opts.Path,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("accountapp"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if !opts.LogQueries {
		configurePool(sqlDB)
		return sqlDB, nil
	}

	logger := zerolog.New(os.Stdout).Level(zerolog.DebugLevel).With().Timestamp().Logger()

	db := sqldblogger.OpenDriver(opts.Path, sqlDB.Driver(), zerologadapter.New(logger),
		sqldblogger.WithSQLQueryFieldname("sql"),
		sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
	)
	configurePool(db)

	return db, nil
}

func NewDB(opts Options) (*DB, error) {
	sqlDB, err := Open(opts)

	if err != nil {
		return nil, err
	}

	return Wrap(sqlDB), nil
}

// Wrap attaches the sqlite query builder to an already open pool.
func Wrap(sqlDB *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}

func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"sqlite3",
		driver,
	)

	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("sqlite migrations applied", "path", migrationsPath)

	return nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}
