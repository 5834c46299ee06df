package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"accountapp/internal/core/domain"
	"accountapp/internal/core/model/response"
	"accountapp/internal/core/pipeline"
	"accountapp/internal/core/port"
)

const (
	MessageRegisterMissingFields = "Please fill both username and name"
	MessageRegisterTooShort      = "Username and name should be contain atleast 4 characters"
	MessageUsernameInUse         = "username already in use"
	MessageLoginMissingFields    = "Please enter both field username and password"
	MessageUserNotFound          = "Sorry, No user found"
	MessageIncorrectPassword     = "Incorrect Password"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"

	serviceName = "credential"
)

var ErrEmptyToken = errors.New("token issuer returned an empty token")

type registrationPresence struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// min counts characters, not bytes.
type registrationLength struct {
	Username string `json:"username" validate:"min=4"`
	Name     string `json:"name" validate:"min=4"`
}

type loginPresence struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CredentialService struct {
	users     port.UserStore
	tokens    port.TokenIssuer
	hasher    port.PasswordHasher
	validator port.Validator
	telemetry port.Telemetry
}

func NewCredentialService(
	users port.UserStore,
	tokens port.TokenIssuer,
	hasher port.PasswordHasher,
	validator port.Validator,
	telemetry port.Telemetry,
) port.CredentialService {
	return &CredentialService{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		validator: validator,
		telemetry: telemetry,
	}
}

func (s *CredentialService) Register(ctx context.Context, username, name, password string) (result pipeline.Result, err error) {
	ctx, finish := s.observe(ctx, "register", attribute.String("user.username", username))
	defer func() { finish(result, err) }()

	if s.validator.ValidateStruct(registrationPresence{Username: username, Name: name}) != nil {
		return pipeline.Fail(MessageRegisterMissingFields), nil
	}

	if s.validator.ValidateStruct(registrationLength{Username: username, Name: name}) != nil {
		return pipeline.Fail(MessageRegisterTooShort), nil
	}

	_, err = s.users.FindByUsername(ctx, username)

	switch {
	case err == nil:
		return pipeline.Fail(MessageUsernameInUse), nil
	case !errors.Is(err, domain.ErrUserNotFound):
		slog.Error("CredentialService#Register", "error", err)
		return pipeline.Result{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := s.hasher.Hash(password)

	if err != nil {
		slog.Error("CredentialService#Register", "error", err)
		return pipeline.Result{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Insert(ctx, domain.NewUser(username, name, hash))

	if errors.Is(err, domain.ErrUsernameTaken) {
		slog.Warn("CredentialService#Register", "username", username, "error", err)
		return pipeline.Fail(MessageUsernameInUse), nil
	}

	if err != nil {
		slog.Error("CredentialService#Register", "error", err)
		return pipeline.Result{}, fmt.Errorf("insert user: %w", err)
	}

	token, err := s.issue(ctx, user)

	if err != nil {
		return pipeline.Result{}, err
	}

	s.telemetry.RecordBusinessEvent(ctx, "user.registered", "user", user.UUID.String(), map[string]any{
		"username": user.Username,
	})

	return pipeline.Succeed(response.NewUserResponse(user), token), nil
}

func (s *CredentialService) Login(ctx context.Context, username, password string) (result pipeline.Result, err error) {
	ctx, finish := s.observe(ctx, "login", attribute.String("user.username", username))
	defer func() { finish(result, err) }()

	if s.validator.ValidateStruct(loginPresence{Username: username, Password: password}) != nil {
		return pipeline.Fail(MessageLoginMissingFields), nil
	}

	user, err := s.users.FindByUsername(ctx, username)

	if errors.Is(err, domain.ErrUserNotFound) {
		return pipeline.Fail(MessageUserNotFound), nil
	}

	if err != nil {
		slog.Error("CredentialService#Login", "error", err)
		return pipeline.Result{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return pipeline.Fail(MessageIncorrectPassword), nil
	}

	token, err := s.issue(ctx, user)

	if err != nil {
		return pipeline.Result{}, err
	}

	s.telemetry.RecordBusinessEvent(ctx, "user.logged_in", "user", user.UUID.String(), nil)

	return pipeline.Succeed(response.NewUserResponse(user), token), nil
}

func (s *CredentialService) CurrentUser(ctx context.Context, identity port.Identity, token string) (result pipeline.Result, err error) {
	ctx, finish := s.observe(ctx, "current_user", attribute.String("user.uuid", identity.UserUUID))
	defer func() { finish(result, err) }()

	user, err := s.users.FindByUUID(ctx, identity.UserUUID)

	if errors.Is(err, domain.ErrUserNotFound) {
		return pipeline.Fail(MessageUserNotFound), nil
	}

	if err != nil {
		slog.Error("CredentialService#CurrentUser", "error", err)
		return pipeline.Result{}, fmt.Errorf("find user: %w", err)
	}

	return pipeline.Succeed(response.NewUserResponse(user), token), nil
}

func (s *CredentialService) issue(ctx context.Context, user domain.User) (string, error) {
	token, err := s.tokens.Issue(ctx, port.Identity{
		UserUUID: user.UUID.String(),
		Username: user.Username,
	})

	if err != nil {
		slog.Error("CredentialService#issue", "error", err)
		return "", fmt.Errorf("issue token: %w", err)
	}

	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

func (s *CredentialService) observe(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(pipeline.Result, error)) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, serviceName, operation, attrs)
	start := time.Now()

	return ctx, func(result pipeline.Result, err error) {
		defer span.End()

		s.telemetry.RecordServiceOperation(ctx, serviceName, operation, outcomeOf(result, err), time.Since(start), err)
	}
}

func outcomeOf(result pipeline.Result, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case result.Failed():
		return OutcomeRejected
	default:
		return OutcomeSuccess
	}
}
