package factory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"accountapp/internal/core/domain"
)

func TestNewUser_Defaults(t *testing.T) {
	user := NewUser[domain.User](map[string]any{
		"Username": "knrt10",
		"Name":     "Kautilya",
	})

	assert.Equal(t, "knrt10", user.Username)
	assert.Equal(t, "Kautilya", user.Name)
	assert.NotEqual(t, uuid.Nil, user.UUID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(DefaultPassword)))
}

func TestNewUser_WithPasswordHash(t *testing.T) {
	user := NewUser[domain.User](map[string]any{
		"Username":     "knrt10",
		"PasswordHash": "precomputed",
	})

	assert.Equal(t, "precomputed", user.PasswordHash)
}

func TestNewUser_LaterMapsWin(t *testing.T) {
	user := NewUser[domain.User](
		map[string]any{"Username": "first"},
		map[string]any{"Username": "second"},
	)

	assert.Equal(t, "second", user.Username)
}
