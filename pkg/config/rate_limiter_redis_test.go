package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
)

// Runs only against a disposable redis named by REDIS_TEST_URL.
func TestRedisRateLimitStore_Increment(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")

	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	RegisterTestingT(t)

	store, err := NewRedisRateLimitStore(context.Background(), url)
	Expect(err).To(BeNil())
	defer store.Close()

	key := "rate_limit:test:" + uuid.NewString()

	first, reset, err := store.Increment(context.Background(), key, time.Minute)
	Expect(err).To(BeNil())
	Expect(first).To(Equal(1))
	Expect(reset).To(BeTemporally("~", time.Now().Add(time.Minute), 2*time.Second))

	second, _, err := store.Increment(context.Background(), key, time.Minute)
	Expect(err).To(BeNil())
	Expect(second).To(Equal(2))
}
