package handler

import (
	"context"
	"log/slog"

	"accountapp/internal/adapter/http/helper"
	"accountapp/internal/adapter/http/middleware"
	"accountapp/internal/core/model/request"
	"accountapp/internal/core/pipeline"
	"accountapp/internal/core/port"
	"accountapp/internal/core/util"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	svc       port.CredentialService
	validator port.Validator
}

func NewAccountHandler(svc port.CredentialService, validator port.Validator) *AccountHandler {
	return &AccountHandler{
		svc:       svc,
		validator: validator,
	}
}

// Dispatch serves POST /rpc. Malformed calls are rejected at the transport
// level; everything else is answered with an envelope and status 200.
func (a *AccountHandler) Dispatch(c *gin.Context) {
	params, err := util.ParamsToMap[request.RPCRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := a.validator.ValidateStruct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	var op pipeline.Operation

	switch params.Operation {
	case request.OperationRegisterUser:
		vars, err := util.DecodeVariables[request.RegisterRequest](params.Variables)

		if err != nil {
			helper.SendBadRequestError(c, "variables", "Invalid operation variables")
			return
		}

		op = func(ctx context.Context) (pipeline.Result, error) {
			return a.svc.Register(ctx, vars.Username, vars.Name, vars.Password)
		}

	case request.OperationLoginUser:
		vars, err := util.DecodeVariables[request.LoginRequest](params.Variables)

		if err != nil {
			helper.SendBadRequestError(c, "variables", "Invalid operation variables")
			return
		}

		op = func(ctx context.Context) (pipeline.Result, error) {
			return a.svc.Login(ctx, vars.Username, vars.Password)
		}

	case request.OperationCurrentUser:
		identity, token, ok := middleware.IdentityFrom(c)

		if !ok {
			helper.SendUnauthorizedError(c, "Unauthorized request")
			return
		}

		op = func(ctx context.Context) (pipeline.Result, error) {
			return a.svc.CurrentUser(ctx, identity, token)
		}
	}

	envelope := pipeline.Complete(c.Request.Context(), op)

	if envelope.Code != pipeline.CodeHandled {
		slog.Error("AccountHandler#Dispatch", "operation", params.Operation, "code", envelope.Code)
	}

	helper.SendEnvelope(c, params.Operation, envelope)
}

// Me serves GET /me behind the required Bearer middleware.
func (a *AccountHandler) Me(c *gin.Context) {
	identity, token, ok := middleware.IdentityFrom(c)

	if !ok {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	envelope := pipeline.Complete(c.Request.Context(), func(ctx context.Context) (pipeline.Result, error) {
		return a.svc.CurrentUser(ctx, identity, token)
	})

	helper.SendEnvelope(c, request.OperationCurrentUser, envelope)
}
