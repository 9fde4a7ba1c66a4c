// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/asistente-contable/backend/internal/infra/metrics"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/controller"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Profile     *controller.ProfileController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Asiento     *controller.AsientoController
	KPI         *controller.KPIController
	Advice      *controller.AdviceController
	Webhook     *controller.WebhookController
}

// Middlewares groups the middleware shared across route groups.
type Middlewares struct {
	Auth             *middleware.AuthMiddleware
	LoginRateLimiter *middleware.RateLimiter
	WebhookLimiter   *middleware.RateLimiter
	WebhookSecret    string
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine      *gin.Engine
	controllers Controllers
	middlewares Middlewares
	metrics     *metrics.Collector
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(controllers Controllers, middlewares Middlewares, collector *metrics.Collector) *Router {
	return &Router{
		controllers: controllers,
		middlewares: middlewares,
		metrics:     collector,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.SecurityHeaders(), middleware.Metrics(r.metrics))
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

	r.setupOperationalRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupOperationalRoutes configures health and metrics endpoints.
func (r *Router) setupOperationalRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	c := r.controllers
	m := r.middlewares

	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", m.LoginRateLimiter.Middleware(), c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
		auth.POST("/send-welcome-email", c.Auth.SendWelcomeEmail)
	}

	// Automation callers authenticate with the shared webhook secret instead of a session.
	webhookGuard := []gin.HandlerFunc{m.WebhookLimiter.Middleware(), middleware.WebhookAuth(m.WebhookSecret)}

	webhooks := v1.Group("/webhook", webhookGuard...)
	{
		webhooks.POST("/n8n", c.Webhook.Transaction)
		webhooks.POST("/asientos", c.Webhook.Asiento)
	}
	v1.POST("/transactions/query", append(webhookGuard, c.Webhook.Query)...)

	authed := v1.Group("", m.Auth.Authenticate())

	profile := authed.Group("/profile")
	{
		profile.GET("", c.Profile.Get)
		profile.PUT("", c.Profile.Update)
	}

	authed.GET("/categories", c.Category.List)

	transactions := authed.Group("/transactions")
	{
		transactions.GET("", c.Transaction.List)
		transactions.POST("", c.Transaction.Create)
		transactions.GET("/periods", c.Transaction.Periods)
		transactions.PUT("/:id", c.Transaction.Update)
		transactions.DELETE("/:id", c.Transaction.Delete)
	}

	asientos := authed.Group("/asientos")
	{
		asientos.GET("", c.Asiento.List)
		asientos.POST("", c.Asiento.Create)
		asientos.GET("/categorias", c.Asiento.Catalog)
		asientos.GET("/stats", c.Asiento.Stats)
		asientos.GET("/:id", c.Asiento.Get)
		asientos.PUT("/:id", c.Asiento.Update)
		asientos.DELETE("/:id", c.Asiento.Delete)
	}

	authed.GET("/kpis", c.KPI.Get)

	advice := authed.Group("/advice")
	{
		advice.GET("", c.Advice.List)
		advice.POST("", c.Advice.Create)
		advice.POST("/generate", c.Advice.Generate)
		advice.PATCH("/:id/read", c.Advice.MarkRead)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
