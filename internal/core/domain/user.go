package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           int
	UUID         uuid.UUID
	Username     string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(username, name, passwordHash string) User {
	now := time.Now().UTC()

	return User{
		UUID:         uuid.New(),
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
