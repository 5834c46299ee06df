package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"accountapp/internal/core/port"
)

const DefaultTTL = 3 * time.Hour

var (
	ErrMissingSecret = errors.New("jwt secret is empty")
	ErrInvalidToken  = errors.New("invalid access token")
)

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 tokens bound to a user's public id.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration) (*JWT, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &JWT{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

var _ port.TokenIssuer = (*JWT)(nil)

func (j *JWT) Issue(ctx context.Context, identity port.Identity) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := j.now()

	claims := Claims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)

	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

func (j *JWT) Verify(tokenString string) (port.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)

	if err != nil {
		slog.Info("Error verifying token", "error", err)
		return port.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return port.Identity{}, ErrInvalidToken
	}

	return port.Identity{
		UserUUID: claims.Subject,
		Username: claims.Username,
	}, nil
}
