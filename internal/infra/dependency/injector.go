// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/tracker/config"
	"github.com/finance-tracker/tracker/internal/application/session"
	"github.com/finance-tracker/tracker/internal/application/usecase/auth"
	"github.com/finance-tracker/tracker/internal/application/usecase/dashboard"
	"github.com/finance-tracker/tracker/internal/application/usecase/goal"
	"github.com/finance-tracker/tracker/internal/application/usecase/transaction"
	"github.com/finance-tracker/tracker/internal/infra/server/router"
	"github.com/finance-tracker/tracker/internal/integration/adapters"
	"github.com/finance-tracker/tracker/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/tracker/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/tracker/internal/integration/feed"
	"github.com/finance-tracker/tracker/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Redis            *redis.Client
	Router           *router.Router
	Sessions         *session.Manager
	TokenRepository  persistence.TokenRepository
	LoginRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dbHealth, redisHealth controller.HealthChecker) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, tokenRepo)

	// Create feeds and the session manager
	notifier := feed.NewNotifier(rdb, cfg.Redis.ChannelPrefix)
	transactionFeed := feed.NewTransactionFeed(rdb, cfg.Redis.ChannelPrefix, transactionRepo)
	goalFeed := feed.NewGoalFeed(rdb, cfg.Redis.ChannelPrefix, goalRepo)

	location := cfg.Session.Location()
	sessions := session.NewManager(transactionFeed, goalFeed, session.Config{
		Location:            location,
		InitialSnapshotWait: cfg.Session.InitialSnapshotWait,
	})

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, notifier)

	// Create goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, notifier)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo, notifier)

	// Create dashboard use cases
	computeSummaryUseCase := dashboard.NewComputeSummaryUseCase(location, nil)

	// Create controllers
	healthController := controller.NewHealthController(dbHealth, redisHealth)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, logoutUseCase, sessions)
	transactionController := controller.NewTransactionController(createTransactionUseCase, sessions)
	dashboardController := controller.NewDashboardController(computeSummaryUseCase, sessions, cfg.Session.StreamKeepAlive)
	goalController := controller.NewGoalController(createGoalUseCase, getGoalUseCase, deleteGoalUseCase, sessions)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.RateLimit.Enabled,
		cfg.RateLimit.MaxAttempts,
		cfg.RateLimit.Window,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		dashboardController,
		goalController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:           cfg,
		DB:               db,
		Redis:            rdb,
		Router:           r,
		Sessions:         sessions,
		TokenRepository:  tokenRepo,
		LoginRateLimiter: loginRateLimiter,
	}
}
