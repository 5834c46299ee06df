// Package pipeline turns the outcome of an account operation into the
// response envelope handed to the transport.
//
// Business outcomes travel as Result values on both paths. Complete only
// has to project them; anything else that comes out of an operation (an
// error or a panic from a collaborator) becomes the internal-error envelope.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"accountapp/internal/core/model/response"
)

const (
	CodeHandled  = http.StatusOK
	CodeInternal = http.StatusInternalServerError

	MessageSuccess  = "Successful response"
	MessageInternal = "Internal server error"
)

type Result struct {
	message string
	data    response.CredentialResult
}

type Operation func(ctx context.Context) (Result, error)

func Succeed(user response.UserResponse, token string) Result {
	return Result{
		message: MessageSuccess,
		data: response.CredentialResult{
			Success: true,
			User:    &user,
			Token:   &token,
		},
	}
}

func Fail(message string) Result {
	return Result{
		message: message,
		data:    response.CredentialResult{Success: false},
	}
}

func (r Result) Failed() bool {
	return !r.data.Success
}

func (r Result) Message() string {
	return r.message
}

func (r Result) Envelope() response.Envelope {
	return response.Envelope{
		Code:    CodeHandled,
		Message: r.message,
		Data:    r.data,
	}
}

func InternalError() response.Envelope {
	return response.Envelope{
		Code:    CodeInternal,
		Message: MessageInternal,
		Data:    response.CredentialResult{Success: false},
	}
}

// Complete runs op and always returns exactly one well-formed envelope.
func Complete(ctx context.Context, op Operation) (env response.Envelope) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "Pipeline#Complete", "panic", fmt.Sprint(rec))
			env = InternalError()
		}
	}()

	result, err := op(ctx)

	if err != nil {
		slog.ErrorContext(ctx, "Pipeline#Complete", "error", err)
		return InternalError()
	}

	return result.Envelope()
}
