package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountapp/internal/core/model/response"
	"accountapp/internal/core/pipeline"
)

func summary() response.UserResponse {
	return response.UserResponse{
		UUID:      "7d4c4a3e-0d8b-4b0e-9f0c-111111111111",
		Username:  "knrt10",
		Name:      "Kautilya",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestComplete_SuccessIsProjectedVerbatim(t *testing.T) {
	result := pipeline.Succeed(summary(), "signed-token")

	env := pipeline.Complete(context.Background(), func(ctx context.Context) (pipeline.Result, error) {
		return result, nil
	})

	assert.Equal(t, result.Envelope(), env)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "Successful response", env.Message)
	assert.True(t, env.Data.Success)
	require.NotNil(t, env.Data.User)
	require.NotNil(t, env.Data.Token)
	assert.Equal(t, "knrt10", env.Data.User.Username)
	assert.Equal(t, "signed-token", *env.Data.Token)
}

func TestComplete_FailureIsProjectedVerbatim(t *testing.T) {
	result := pipeline.Fail("username already in use")

	env := pipeline.Complete(context.Background(), func(ctx context.Context) (pipeline.Result, error) {
		return result, nil
	})

	assert.Equal(t, result.Envelope(), env)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "username already in use", env.Message)
	assert.False(t, env.Data.Success)
	assert.Nil(t, env.Data.User)
	assert.Nil(t, env.Data.Token)
}

func TestComplete_SuccessAndFailureShareTheSameShape(t *testing.T) {
	ok := pipeline.Complete(context.Background(), func(ctx context.Context) (pipeline.Result, error) {
		return pipeline.Succeed(summary(), "token"), nil
	})
	failed := pipeline.Complete(context.Background(), func(ctx context.Context) (pipeline.Result, error) {
		return pipeline.Fail("Incorrect Password"), nil
	})

	assert.Equal(t, ok.Code, failed.Code)
	assert.IsType(t, ok.Data, failed.Data)
}

func TestComplete_CollaboratorErrorBecomesInternalError(t *testing.T) {
	env := pipeline.Complete(context.Background(), func(ctx context.Context) (pipeline.Result, error) {
		return pipeline.Result{}, errors.New("connection refused")
	})

	assert.Equal(t, pipeline.InternalError(), env)
	assert.Equal(t, 500, env.Code)
	assert.Equal(t, "Internal server error", env.Message)
	assert.False(t, env.Data.Success)
	assert.Nil(t, env.Data.User)
	assert.Nil(t, env.Data.Token)
}

func TestComplete_PanicBecomesInternalError(t *testing.T) {
	env := pipeline.Complete(context.Background(), func(ctx context.Context) (pipeline.Result, error) {
		panic("nil map write")
	})

	assert.Equal(t, pipeline.InternalError(), env)
}

func TestResult_Failed(t *testing.T) {
	assert.False(t, pipeline.Succeed(summary(), "token").Failed())
	assert.True(t, pipeline.Fail("Sorry, No user found").Failed())
	assert.Equal(t, "Sorry, No user found", pipeline.Fail("Sorry, No user found").Message())
}
