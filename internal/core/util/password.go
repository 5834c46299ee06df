package util

import "golang.org/x/crypto/bcrypt"

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

func (h *BcryptHasher) Verify(password, encrypted string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), truncate(password)) == nil
}

func truncate(password string) []byte {
	if len(password) > maxPasswordBytes {
		return []byte(password[:maxPasswordBytes])
	}

	return []byte(password)
}
