package util

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

// DecodeVariables decodes an operation's variables; missing variables decode to the zero value.
func DecodeVariables[T any](raw json.RawMessage) (T, error) {
	var params T

	if len(raw) == 0 || string(raw) == "null" {
		return params, nil
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return params, err
	}

	return params, nil
}
