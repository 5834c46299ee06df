package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	database "accountapp/internal/adapter/database/postgres"
	domain "accountapp/internal/core/domain"
	port "accountapp/internal/core/port"
)

const (
	uniqueViolation    = "23505"
	usernameConstraint = "users_username_key"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserStore {
	return &UserRepository{db: db}
}

func (ur *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return ur.findOne(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) FindByUUID(ctx context.Context, uid string) (domain.User, error) {
	return ur.findOne(ctx, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "username", "name", "password_hash", "created_at", "updated_at").
		Values(user.UUID, user.Username, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(&user.ID)

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == usernameConstraint {
		return domain.User{}, domain.ErrUsernameTaken
	}

	if err != nil {
		slog.Error("UserRepository#Insert", "error", err)
		return domain.User{}, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (ur *UserRepository) DeleteByUUID(ctx context.Context, uid string) error {
	stmt, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return err
	}

	tag, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (ur *UserRepository) findOne(ctx context.Context, where sq.Eq) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select("id", "uuid", "username", "name", "password_hash", "created_at", "updated_at").
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(
		&user.ID,
		&user.UUID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	var pgErr *pgconn.PgError

	// a malformed uuid literal is a lookup miss, not a defect
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("UserRepository#findOne", "error", err)
		return domain.User{}, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
