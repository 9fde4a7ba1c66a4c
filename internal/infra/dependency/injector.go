// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/asistente-contable/backend/config"
	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/application/usecase/advice"
	"github.com/asistente-contable/backend/internal/application/usecase/asiento"
	"github.com/asistente-contable/backend/internal/application/usecase/auth"
	"github.com/asistente-contable/backend/internal/application/usecase/category"
	"github.com/asistente-contable/backend/internal/application/usecase/kpi"
	"github.com/asistente-contable/backend/internal/application/usecase/profile"
	"github.com/asistente-contable/backend/internal/application/usecase/transaction"
	"github.com/asistente-contable/backend/internal/application/usecase/webhook"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/infra/cache"
	"github.com/asistente-contable/backend/internal/infra/metrics"
	"github.com/asistente-contable/backend/internal/infra/server/router"
	"github.com/asistente-contable/backend/internal/integration/adapters"
	"github.com/asistente-contable/backend/internal/integration/email"
	"github.com/asistente-contable/backend/internal/integration/email/templates"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/controller"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/middleware"
	"github.com/asistente-contable/backend/internal/integration/persistence"
)

// testLoginAttempts keeps test runs from tripping the login limiter.
const testLoginAttempts = 1000

// Options carries optional collaborators. Nil fields are built from the configuration.
type Options struct {
	// Redis backs the webhook rate limiter when set.
	Redis *cache.Redis
	// Metrics is created when nil.
	Metrics *metrics.Collector
	// EmailSender defaults to the Resend client.
	EmailSender adapter.EmailSender
	// AdviceGenerator defaults to the Gemini service.
	AdviceGenerator adapter.AdviceGenerator
	// PasswordCost overrides the bcrypt cost.
	PasswordCost int
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Metrics     *metrics.Collector
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	collector := opts.Metrics
	if collector == nil {
		collector = metrics.NewCollector()
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	catalogRepo := persistence.NewAccountingCatalogRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	asientoRepo := persistence.NewAsientoRepository(db)
	kpiRepo := persistence.NewKPIRepository(db)
	adviceRepo := persistence.NewAdviceRepository(db)
	auditRepo := persistence.NewAuditLogRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(opts.PasswordCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	generator := opts.AdviceGenerator
	if generator == nil {
		generator = adapters.NewGeminiService(adapters.GeminiConfig{
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
			Timeout:     cfg.AI.Timeout,
		}, collector)
	}
	if !generator.IsAvailable() {
		slog.Warn("Advice generation disabled, GEMINI_API_KEY is not set")
	}

	sender := opts.EmailSender
	if sender == nil {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	workerConfig := email.DefaultWorkerConfig()
	if cfg.Email.PollInterval > 0 {
		workerConfig.PollInterval = cfg.Email.PollInterval
	}
	if cfg.Email.BatchSize > 0 {
		workerConfig.BatchSize = cfg.Email.BatchSize
	}
	worker := email.NewWorker(emailQueueRepo, sender, renderer, collector, workerConfig)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, emailService, cfg.Email.AppBaseURL)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	welcomeEmailUseCase := auth.NewSendWelcomeEmailUseCase(emailService, cfg.Email.Secret, cfg.Email.AppBaseURL)

	// Create profile and category use cases
	getProfileUseCase := profile.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := profile.NewUpdateProfileUseCase(userRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	listPeriodsUseCase := transaction.NewListPeriodsUseCase(transactionRepo)

	// Create asiento use cases
	validator := asiento.NewValidator(catalogRepo)
	listAsientosUseCase := asiento.NewListAsientosUseCase(asientoRepo)
	getAsientoUseCase := asiento.NewGetAsientoUseCase(asientoRepo)
	createAsientoUseCase := asiento.NewCreateAsientoUseCase(asientoRepo, validator)
	updateAsientoUseCase := asiento.NewUpdateAsientoUseCase(asientoRepo, validator)
	deleteAsientoUseCase := asiento.NewDeleteAsientoUseCase(asientoRepo)
	statsUseCase := asiento.NewGetStatsUseCase(asientoRepo, catalogRepo)
	catalogUseCase := asiento.NewListCatalogUseCase(catalogRepo)

	// Create KPI and advice use cases
	getKPIsUseCase := kpi.NewGetKPIsUseCase(transactionRepo, kpiRepo)
	listAdvicesUseCase := advice.NewListAdvicesUseCase(adviceRepo)
	createAdviceUseCase := advice.NewCreateAdviceUseCase(adviceRepo)
	markReadUseCase := advice.NewMarkReadUseCase(adviceRepo)
	generateAdviceUseCase := advice.NewGenerateAdviceUseCase(transactionRepo, adviceRepo, generator)

	// Create webhook use cases
	resolver := webhook.NewUserResolver(userRepo)
	ingestTransactionUseCase := webhook.NewIngestTransactionUseCase(resolver, transactionRepo, auditRepo)
	ingestAsientoUseCase := webhook.NewIngestAsientoUseCase(resolver, validator, asientoRepo, auditRepo)
	queryUseCase := webhook.NewQueryTransactionsUseCase(resolver, transactionRepo)

	// Create controllers
	var cacheHealthChecker controller.HealthChecker
	if opts.Redis != nil {
		cacheHealthChecker = opts.Redis.HealthCheck
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	controllers := router.Controllers{
		Health: healthController,
		Auth: controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
			welcomeEmailUseCase,
		),
		Profile:  controller.NewProfileController(getProfileUseCase, updateProfileUseCase),
		Category: controller.NewCategoryController(listCategoriesUseCase),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			listPeriodsUseCase,
		),
		Asiento: controller.NewAsientoController(
			listAsientosUseCase,
			getAsientoUseCase,
			createAsientoUseCase,
			updateAsientoUseCase,
			deleteAsientoUseCase,
			statsUseCase,
			catalogUseCase,
		),
		KPI: controller.NewKPIController(getKPIsUseCase),
		Advice: controller.NewAdviceController(
			listAdvicesUseCase,
			createAdviceUseCase,
			markReadUseCase,
			generateAdviceUseCase,
			collector,
		),
		Webhook: controller.NewWebhookController(
			ingestTransactionUseCase,
			ingestAsientoUseCase,
			queryUseCase,
			collector,
		),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	loginLimits := middleware.RateLimitOptions{Code: string(domainerror.ErrCodeRateLimited)}
	if cfg.Server.IsTest() {
		loginLimits.MaxAttempts = testLoginAttempts
	}

	webhookLimits := middleware.RateLimitOptions{
		MaxAttempts: cfg.Webhook.RateLimit,
		Window:      cfg.Webhook.RateWindow,
		KeyPrefix:   "ratelimit:webhook:",
		Code:        string(domainerror.ErrCodeWebhookRateLimited),
	}
	if opts.Redis != nil {
		webhookLimits.Counter = opts.Redis
	}

	middlewares := router.Middlewares{
		Auth:             middleware.NewAuthMiddleware(tokenService),
		LoginRateLimiter: middleware.NewRateLimiterWithOptions(loginLimits),
		WebhookLimiter:   middleware.NewRateLimiterWithOptions(webhookLimits),
		WebhookSecret:    cfg.Webhook.SecretToken,
	}

	// Create router
	r := router.NewRouter(controllers, middlewares, collector)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Metrics:     collector,
		EmailWorker: worker,
	}, nil
}
