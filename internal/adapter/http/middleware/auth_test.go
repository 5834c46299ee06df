package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"accountapp/internal/adapter/http/middleware"
	"accountapp/internal/core/port"
	"accountapp/pkg/auth"
)

var identity = port.Identity{
	UserUUID: "3f1b8d2e-6f0c-4c55-8a47-2b9b2d7f0c11",
	Username: "knrt10",
}

func TestJwtMiddleware(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	issuer, _ := auth.NewJWT("secret", time.Hour)
	token, _ := issuer.Issue(context.Background(), identity)

	router := gin.New()
	router.Use(middleware.CurrentMiddleware())
	router.GET("/me", middleware.JwtMiddleware(issuer), func(c *gin.Context) {
		id, raw, ok := middleware.IdentityFrom(c)

		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(identity))
		Expect(raw).To(Equal(token))

		uid, _ := middleware.GetCurrent(c).GetString("user_uuid")
		Expect(uid).To(Equal(identity.UserUUID))

		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)

			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(tt.status))
		})
	}
}

func TestOptionalJwtMiddleware(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	issuer, _ := auth.NewJWT("secret", time.Hour)
	token, _ := issuer.Issue(context.Background(), identity)

	var authenticated bool

	router := gin.New()
	router.POST("/rpc", middleware.OptionalJwtMiddleware(issuer), func(c *gin.Context) {
		_, _, authenticated = middleware.IdentityFrom(c)
		c.Status(http.StatusOK)
	})

	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"Bearer garbage", false},
		{"Bearer " + token, true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/rpc", nil)

		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(authenticated).To(Equal(tt.want))
	}
}
