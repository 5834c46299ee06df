package context_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	ct "accountapp/pkg/context"
)

func TestCurrent_RoundTrip(t *testing.T) {
	current := ct.NewCurrent()
	current.Set("request_id", "abc")
	current.Set("attempt", 2)

	ctx := ct.WithCurrent(context.Background(), current)

	got, ok := ct.FromContext(ctx)
	assert.True(t, ok)

	id, ok := got.GetString("request_id")
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = got.GetString("attempt")
	assert.False(t, ok)

	assert.Len(t, got.All(), 2)
}

func TestGetCurrent_Missing(t *testing.T) {
	current := ct.GetCurrent(context.Background())

	assert.NotNil(t, current)
	assert.Empty(t, current.All())
}
