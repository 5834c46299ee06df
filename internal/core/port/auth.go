package port

import (
	"context"

	"accountapp/internal/core/pipeline"
)

// Identity is what a token binds to.
type Identity struct {
	UserUUID string
	Username string
}

type TokenIssuer interface {
	Issue(ctx context.Context, identity Identity) (string, error)
	Verify(token string) (Identity, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

type CredentialService interface {
	Register(ctx context.Context, username, name, password string) (pipeline.Result, error)
	Login(ctx context.Context, username, password string) (pipeline.Result, error)
	CurrentUser(ctx context.Context, identity Identity, token string) (pipeline.Result, error)
}
