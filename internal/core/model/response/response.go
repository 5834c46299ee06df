package response

import (
	"time"

	"accountapp/internal/core/domain"
)

type UserResponse struct {
	UUID      string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		UUID:      user.UUID.String(),
		Username:  user.Username,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// CredentialResult is the data payload of every account envelope.
// Success is true only when both User and Token are set.
type CredentialResult struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
	Token   *string       `json:"token"`
}

type Envelope struct {
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Data    CredentialResult `json:"data"`
}

// RPCResponse keys each envelope by the operation that produced it.
type RPCResponse struct {
	Data map[string]Envelope `json:"data"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
