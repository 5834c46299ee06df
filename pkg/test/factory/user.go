package factory

import (
	"maps"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultPassword = "12345678"

// NewUser builds a T with random field values. A PasswordHash for
// DefaultPassword, a fresh UUID and timestamps are filled in unless the
// overrides set them.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	now := time.Now().UTC().Truncate(time.Second)
	defaults := map[string]any{
		"UUID":      uuid.New(),
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	if !overridden(customData, "PasswordHash") {
		passwordHash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		defaults["PasswordHash"] = string(passwordHash)
	}

	for _, data := range customData {
		maps.Copy(defaults, data)
	}

	return instance.Build(defaults)
}

func overridden(customData []map[string]any, key string) bool {
	for _, data := range customData {
		if _, exists := data[key]; exists {
			return true
		}
	}

	return false
}
