package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	t.Run("should assign a fresh uuid and timestamps", func(t *testing.T) {
		user := NewUser("knrt10", "Kautilya", "hash")

		assert.NotEqual(t, uuid.Nil, user.UUID)
		assert.Equal(t, "knrt10", user.Username)
		assert.Equal(t, "Kautilya", user.Name)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	})

	t.Run("should not reuse uuids", func(t *testing.T) {
		first := NewUser("first", "First", "hash")
		second := NewUser("second", "Second", "hash")

		assert.NotEqual(t, first.UUID, second.UUID)
	})
}
