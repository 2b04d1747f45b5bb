// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/assistant/config"
	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/admin"
	"github.com/finance-tracker/assistant/internal/application/usecase/assistant"
	"github.com/finance-tracker/assistant/internal/application/usecase/auth"
	"github.com/finance-tracker/assistant/internal/application/usecase/balance"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/application/usecase/goal"
	"github.com/finance-tracker/assistant/internal/application/usecase/profile"
	"github.com/finance-tracker/assistant/internal/application/usecase/schedule"
	"github.com/finance-tracker/assistant/internal/application/usecase/transaction"
	"github.com/finance-tracker/assistant/internal/infra/scheduler"
	"github.com/finance-tracker/assistant/internal/infra/server/router"
	"github.com/finance-tracker/assistant/internal/integration/adapters"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/assistant/internal/integration/persistence"
	"github.com/finance-tracker/assistant/internal/integration/session"
)

const (
	ParserHTTP   = "http"
	ParserGemini = "gemini"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Scheduler *scheduler.Scheduler
}

// Options carries the runtime collaborators that tests replace.
type Options struct {
	// Redis backs sessions and the login rate limiter. Nil keeps both in memory.
	Redis *redis.Client
	// Clock overrides the system clock.
	Clock adapter.Clock
	// Parser overrides the configured intent parser.
	Parser adapter.IntentParser
	// DBHealthChecker and SessionHealthChecker feed GET /health.
	DBHealthChecker      func() bool
	SessionHealthChecker func() bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock(cfg.Locale.Location())
	}

	parser := opts.Parser
	if parser == nil {
		var err error
		parser, err = newIntentParser(cfg)
		if err != nil {
			return nil, err
		}
	}

	// Create repositories
	profileRepo := persistence.NewProfileRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	paymentRepo := persistence.NewScheduledPaymentRepository(db)

	var sessions adapter.SessionStore
	if opts.Redis != nil {
		sessions = session.NewRedisStore(opts.Redis, cfg.Assistant.SessionTTL, cfg.Assistant.LockTTL)
	} else {
		sessions = session.NewMemoryStore(cfg.Assistant.SessionTTL, cfg.Assistant.LockTTL)
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.AdminTokenExpiry)
	idGenerator := adapters.NewUserIDGenerator()
	guard := credit.NewCycleGuard(profileRepo)

	// Create auth use cases
	registerUseCase := auth.NewRegisterProfileUseCase(profileRepo, tokenService, idGenerator, clock)
	loginUseCase := auth.NewLoginUserUseCase(profileRepo, tokenService)
	adminLoginUseCase := auth.NewAdminLoginUseCase(auth.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	}, passwordService, tokenService)

	// Create profile, balance and credit use cases
	getProfileUseCase := profile.NewGetProfileUseCase(profileRepo)
	updateProfileUseCase := profile.NewUpdateProfileUseCase(profileRepo, guard, clock)
	getBalanceUseCase := balance.NewGetBalanceUseCase(profileRepo, guard, clock)
	reconcileUseCase := balance.NewReconcileBalanceUseCase(profileRepo, transactionRepo, guard, clock)
	creditStatusUseCase := credit.NewGetCreditStatusUseCase(profileRepo, guard, clock)
	sweepUseCase := credit.NewSweepCreditCyclesUseCase(profileRepo, guard, clock)

	// Create transaction use cases
	recordUseCase := transaction.NewRecordTransactionUseCase(transactionRepo, profileRepo, guard, clock)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	dayTransactionsUseCase := transaction.NewGetDayTransactionsUseCase(transactionRepo)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	contributeUseCase := goal.NewContributeToGoalUseCase(goalRepo)

	// Create schedule use cases
	createPaymentUseCase := schedule.NewCreateScheduledPaymentUseCase(paymentRepo, clock)
	listPaymentsUseCase := schedule.NewListScheduledPaymentsUseCase(paymentRepo, clock)
	updatePaymentUseCase := schedule.NewUpdateScheduledPaymentUseCase(paymentRepo, clock)
	deletePaymentUseCase := schedule.NewDeleteScheduledPaymentUseCase(paymentRepo)
	markPaidUseCase := schedule.NewMarkScheduledPaymentPaidUseCase(paymentRepo, recordUseCase, clock)
	summaryUseCase := schedule.NewGetMonthlySummaryUseCase(profileRepo, paymentRepo, guard, clock)
	daysUntilUseCase := schedule.NewDaysUntilUseCase(clock)

	// Create assistant use cases
	createSessionUseCase := assistant.NewCreateSessionUseCase(sessions)
	getSessionUseCase := assistant.NewGetSessionUseCase(sessions)
	sendMessageUseCase := assistant.NewSendMessageUseCase(
		sessions,
		parser,
		createPaymentUseCase,
		profileRepo,
		transactionRepo,
		paymentRepo,
		guard,
		clock,
		assistant.Options{
			ParserTimeout: cfg.Assistant.ParserTimeout,
			RecentLimit:   cfg.Assistant.RecentLimit,
		},
	)
	confirmUseCase := assistant.NewConfirmPendingUseCase(sessions, recordUseCase)
	cancelUseCase := assistant.NewCancelPendingUseCase(sessions)

	// Create admin use cases
	listUsersUseCase := admin.NewListUsersUseCase(profileRepo)
	getUserUseCase := admin.NewGetUserUseCase(profileRepo, paymentRepo, clock)
	deleteUserUseCase := admin.NewDeleteUserUseCase(profileRepo)
	createUserPaymentUseCase := admin.NewCreateUserPaymentUseCase(profileRepo, createPaymentUseCase)
	reportUseCase := admin.NewGetReportUseCase(profileRepo, transactionRepo, paymentRepo, clock)

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(opts.DBHealthChecker, opts.SessionHealthChecker),
		Auth:   controller.NewAuthController(registerUseCase, loginUseCase, adminLoginUseCase),
		Profile: controller.NewProfileController(
			getProfileUseCase,
			updateProfileUseCase,
			getBalanceUseCase,
			reconcileUseCase,
			creditStatusUseCase,
		),
		Transaction: controller.NewTransactionController(
			recordUseCase,
			listTransactionsUseCase,
			dayTransactionsUseCase,
		),
		Goal: controller.NewGoalController(
			listGoalsUseCase,
			createGoalUseCase,
			getGoalUseCase,
			deleteGoalUseCase,
			contributeUseCase,
		),
		Schedule: controller.NewScheduleController(
			createPaymentUseCase,
			listPaymentsUseCase,
			updatePaymentUseCase,
			deletePaymentUseCase,
			markPaidUseCase,
			summaryUseCase,
			daysUntilUseCase,
		),
		Assistant: controller.NewAssistantController(
			createSessionUseCase,
			getSessionUseCase,
			sendMessageUseCase,
			confirmUseCase,
			cancelUseCase,
		),
		Admin: controller.NewAdminController(
			listUsersUseCase,
			getUserUseCase,
			deleteUserUseCase,
			createUserPaymentUseCase,
			reportUseCase,
		),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	maxAttempts, window := 5, time.Minute
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		maxAttempts = 1000
	}
	var loginRateLimiter *middleware.RateLimiter
	if opts.Redis != nil {
		loginRateLimiter = middleware.NewRedisRateLimiter(opts.Redis, "ratelimit:login:", maxAttempts, window)
	} else {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(maxAttempts, window)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	jobs, err := scheduler.New(
		sweepUseCase,
		[]scheduler.Cleaner{loginRateLimiter},
		scheduler.Config{
			CreditSweepSpec: cfg.Scheduler.CreditSweepSpec,
			CleanupSpec:     scheduler.DefaultConfig().CleanupSpec,
			JobTimeout:      scheduler.DefaultConfig().JobTimeout,
		},
		cfg.Locale.Location(),
	)
	if err != nil {
		return nil, err
	}

	return &Injector{
		Config:    cfg,
		DB:        db,
		Router:    router.NewRouter(controllers, loginRateLimiter, authMiddleware),
		Scheduler: jobs,
	}, nil
}

// newIntentParser picks the parser named by ASSISTANT_PARSER, or the first configured one.
func newIntentParser(cfg *config.Config) (adapter.IntentParser, error) {
	httpParser := func() adapter.IntentParser {
		return adapters.NewHTTPParser(cfg.Assistant.ParserURL, &http.Client{
			Timeout: cfg.Assistant.ParserTimeout,
		})
	}
	geminiParser := func() adapter.IntentParser {
		return adapters.NewGeminiParser(cfg.Gemini.APIKey, cfg.Gemini.Model)
	}

	switch cfg.Assistant.Parser {
	case ParserHTTP:
		return httpParser(), nil
	case ParserGemini:
		return geminiParser(), nil
	case "":
		if cfg.Assistant.ParserURL != "" {
			return httpParser(), nil
		}
		if cfg.Gemini.APIKey == "" {
			slog.Warn("No intent parser configured, the assistant will answer with parser_unavailable")
		}
		return geminiParser(), nil
	default:
		return nil, fmt.Errorf("unknown assistant parser %q", cfg.Assistant.Parser)
	}
}
