package port

import (
	"context"

	"accountapp/internal/core/domain"
)

// UserStore is the persistence boundary for user records.
// FindBy* return domain.ErrUserNotFound when nothing matches and Insert
// returns domain.ErrUsernameTaken when the username unique constraint fires.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByUUID(ctx context.Context, uuid string) (domain.User, error)
	Insert(ctx context.Context, user domain.User) (domain.User, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}
