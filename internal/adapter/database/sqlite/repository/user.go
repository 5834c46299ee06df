package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel/attribute"

	"accountapp/internal/adapter/database/sqlite"
	"accountapp/internal/core/domain"
	"accountapp/internal/core/port"
	tel "accountapp/internal/core/telemetry"
	"accountapp/pkg/tracing"
)

var userColumns = []string{"id", "uuid", "username", "name", "password_hash", "created_at", "updated_at"}

type UserRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserStore {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (ur *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	ctx, span := ur.telemetry.StartServiceSpan(ctx, "user_repository", "find_by_username", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
	})
	defer span.End()

	return ur.findOne(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) FindByUUID(ctx context.Context, uid string) (domain.User, error) {
	ctx, span := ur.telemetry.StartServiceSpan(ctx, "user_repository", "find_by_uuid", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
	})
	defer span.End()

	return ur.findOne(ctx, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := ur.telemetry.StartServiceSpan(ctx, "user_repository", "insert", []attribute.KeyValue{
		attribute.String("db.system", "sqlite"),
	})
	defer span.End()

	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "username", "name", "password_hash", "created_at", "updated_at").
		Values(user.UUID.String(), user.Username, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if isUniqueViolation(err) {
		return domain.User{}, domain.ErrUsernameTaken
	}

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("UserRepository#Insert", "error", err)
		return domain.User{}, fmt.Errorf("db error: %w", err)
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.User{}, fmt.Errorf("db error: %w", err)
	}

	user.ID = int(id)

	return user, nil
}

func (ur *UserRepository) DeleteByUUID(ctx context.Context, uid string) error {
	stmt, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("UserRepository#DeleteByUUID", "error", err)
		return fmt.Errorf("db error: %w", err)
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (ur *UserRepository) findOne(ctx context.Context, where sq.Eq) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRowContext(ctx, stmt, args...).Scan(
		&user.ID,
		&user.UUID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("UserRepository#findOne", "error", err)
		return domain.User{}, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// isUniqueViolation only matches the username constraint; a uuid clash is a defect.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return false
	}

	return strings.Contains(err.Error(), "users.username")
}
