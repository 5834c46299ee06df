package routes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"accountapp/internal/adapter/database/memory"
	"accountapp/internal/adapter/http/handler"
	"accountapp/internal/adapter/http/routes"
	"accountapp/internal/adapter/http/validation"
	"accountapp/internal/core/service"
	"accountapp/internal/core/telemetry"
	"accountapp/internal/core/util"
	"accountapp/pkg/auth"
	"accountapp/pkg/config"
	"accountapp/pkg/tracing"
)

func newHandlers() routes.HandlersConfig {
	tokens, _ := auth.NewJWT("test-secret", time.Hour)

	svc := service.NewCredentialService(
		memory.NewUserStore(),
		tokens,
		util.NewBcryptHasher(bcrypt.MinCost),
		validation.New(),
		telemetry.NewNoOpProbe(),
	)

	return routes.HandlersConfig{
		AccountHandler: handler.NewAccountHandler(svc, validation.New()),
		Tokens:         tokens,
	}
}

func TestSetupRouterWithConfig(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	router := routes.SetupRouterWithConfig(
		newHandlers(),
		tracing.NewAppMetrics(prometheus.NewRegistry()),
		config.NewNopLogger("accountapp"),
		config.GetDefaultConfig(),
		nil,
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Header().Get("X-Request-ID")).NotTo(BeEmpty())

	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(
		`{"operation":"registerUser","variables":{"username":"knrt10","name":"Kautilya","password":"test"}}`,
	))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(ContainSubstring(`"message":"Successful response"`))
	Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("30"))
}

func TestSetupRouterForTests(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	router := routes.SetupRouterForTests(newHandlers())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	Expect(w.Code).To(Equal(http.StatusNotFound))
	Expect(w.Body.String()).To(ContainSubstring("NOT_FOUND"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/rpc", nil))

	Expect(w.Code).To(Equal(http.StatusNoContent))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	Expect(w.Code).To(Equal(http.StatusUnauthorized))
}
