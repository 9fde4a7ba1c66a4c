// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/asistente-contable/backend/config"
	"github.com/asistente-contable/backend/internal/infra/cache"
	"github.com/asistente-contable/backend/internal/infra/dependency"
	"github.com/asistente-contable/backend/internal/integration/email"
	"github.com/asistente-contable/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	testWebhookToken = "test-webhook-token"
	testEmailSecret  = "test-email-secret"
	testResendAPIKey = "re_test_key"
	emailsPath       = "/emails"
)

// Shared across scenarios; reset in the Before hook.
var (
	testDB          *mock.Db
	emailAPI        *mock.ApiMock
	adviceGenerator *mock.AdviceGenerator
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	injector     *dependency.Injector
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken  string
	refreshToken string

	// Users created by the scenario, by email
	users map[string]uuid.UUID

	// Config
	cfg *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb()
		adviceGenerator = mock.NewAdviceGenerator()
		emailAPI = mock.NewApiServer()
		emailAPI.Start()
	})

	ctx.AfterSuite(func() {
		if emailAPI != nil {
			emailAPI.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDataSteps(ctx)
}

// newTestContext resets the shared mocks and serves a freshly wired application.
func newTestContext() (*TestContext, error) {
	if err := testDB.ClearDB(); err != nil {
		return nil, fmt.Errorf("failed to clear database: %w", err)
	}
	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return nil, fmt.Errorf("failed to clear redis: %w", err)
	}
	adviceGenerator.Reset()
	emailAPI.ClearResponses()
	emailAPI.SetResponse(-1, http.MethodPost, emailsPath, http.StatusOK, map[string]any{"id": "email-test-id"})

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Webhook.SecretToken = testWebhookToken
	cfg.Email.Secret = testEmailSecret

	sender, err := email.NewResendClientWithBaseURL(testResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, emailAPI.GetUrl())
	if err != nil {
		return nil, err
	}

	injector, err := dependency.NewInjector(cfg, testDB.DbConn, dependency.Options{
		Redis:           cache.NewRedis(redisClient),
		EmailSender:     sender,
		AdviceGenerator: adviceGenerator,
		PasswordCost:    bcrypt.MinCost,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	return &TestContext{
		server:         httptest.NewServer(engine),
		injector:       injector,
		requestHeaders: make(map[string]string),
		users:          make(map[string]uuid.UUID),
		cfg:            cfg,
	}, nil
}

// expand replaces {user:<email>} placeholders with the id of that scenario user.
func (tc *TestContext) expand(s string) string {
	for email, id := range tc.users {
		s = strings.ReplaceAll(s, "{user:"+email+"}", id.String())
	}
	return s
}
