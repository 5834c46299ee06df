package request

import "encoding/json"

const (
	OperationRegisterUser = "registerUser"
	OperationLoginUser    = "loginUser"
	OperationCurrentUser  = "currentUser"
)

// RPCRequest is the single body shape accepted by the account endpoint.
type RPCRequest struct {
	Operation string          `json:"operation" validate:"required,oneof=registerUser loginUser currentUser"`
	Variables json.RawMessage `json:"variables,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}
